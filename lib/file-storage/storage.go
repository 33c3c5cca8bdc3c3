package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"employee-portal-backend/config"
	"employee-portal-backend/models"

	"github.com/minio/minio-go/v7"
)

// MaxFileSize limits every uploaded document.
const MaxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type Provider interface {
	UploadResume(ctx context.Context, fileName string, data []byte) (url string, err error)
	UploadDocument(ctx context.Context, fileName string, data []byte) (url string, err error)
}

var Instance Provider

func NewHandler(client *minio.Client) {
	Instance = &impl{
		client: client,
	}
}

type impl struct {
	client *minio.Client
}

func (i impl) UploadResume(ctx context.Context, fileName string, data []byte) (string, error) {
	return i.upload(ctx, "resumes", fileName, data)
}

func (i impl) UploadDocument(ctx context.Context, fileName string, data []byte) (string, error) {
	return i.upload(ctx, "additional-documents", fileName, data)
}

func (i impl) upload(ctx context.Context, prefix, fileName string, data []byte) (string, error) {
	contentType, err := checkFile(fileName, data)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("%s/%d-%s", prefix, time.Now().UnixNano(), path.Base(fileName))
	bucket := config.Conf.S3.BucketName
	_, err = i.client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", i.client.EndpointURL().String(), bucket, objectName), nil
}

func checkFile(fileName string, data []byte) (contentType string, err error) {
	if len(data) == 0 {
		return "", models.NewInvalidArgument("file is empty")
	}
	if len(data) > MaxFileSize {
		return "", models.NewInvalidArgument(fmt.Sprintf("file is too large: %s (max 10 MB)", fileName))
	}
	ext := strings.ToLower(path.Ext(fileName))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", models.NewInvalidArgument(fmt.Sprintf("unsupported file type: %s", fileName))
	}
	return contentType, nil
}
