package filestorage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFile(t *testing.T) {
	t.Run("allowed extensions map to content types", func(t *testing.T) {
		cases := map[string]string{
			"resume.pdf":  "application/pdf",
			"RESUME.PDF":  "application/pdf",
			"photo.jpeg":  "image/jpeg",
			"notes.txt":   "text/plain",
			"resume.docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
		for fileName, want := range cases {
			contentType, err := checkFile(fileName, []byte("body"))
			require.NoError(t, err, fileName)
			require.Equal(t, want, contentType, fileName)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := checkFile("malware.exe", []byte("body"))
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := checkFile("resume.pdf", nil)
		require.Error(t, err)
	})

	t.Run("oversized file", func(t *testing.T) {
		_, err := checkFile("resume.pdf", make([]byte, MaxFileSize+1))
		require.Error(t, err)
	})
}
