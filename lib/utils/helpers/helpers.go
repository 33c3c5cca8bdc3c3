package helpers

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

const shortIDBytes = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateShortID returns a short human-readable request id.
func GenerateShortID(length int) string {
	sb := strings.Builder{}
	sb.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortIDBytes))))
		if err != nil {
			sb.WriteByte(shortIDBytes[0])
			continue
		}
		sb.WriteByte(shortIDBytes[idx.Int64()])
	}
	return sb.String()
}

// GenerateNumericCode returns a uniformly random numeric code of the given
// length, zero-padded.
func GenerateNumericCode(length int) string {
	sb := strings.Builder{}
	sb.Grow(length)
	for i := 0; i < length; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			sb.WriteByte('0')
			continue
		}
		sb.WriteByte(byte('0' + digit.Int64()))
	}
	return sb.String()
}
