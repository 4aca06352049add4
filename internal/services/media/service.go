package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"autistnet/internal/domain"
)

// DefaultMaxBytes bounds the size of a loaded image.
const DefaultMaxBytes = 5 << 20

var (
	// ErrTooLarge is returned for files above the size limit.
	ErrTooLarge = errors.New("image is larger than the limit")
	// ErrNotImage is returned when the content is not a recognised image.
	ErrNotImage = errors.New("file is not an image")
)

// Service is a domain.ImageLoader reading from the local filesystem.
type Service struct {
	maxBytes int64
}

// New returns a loader accepting files up to maxBytes. A non-positive
// maxBytes means DefaultMaxBytes.
func New(maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{maxBytes: maxBytes}
}

// Load reads path and returns "data:<mime>;base64,<payload>". Every failure
// is a domain.DecodeError.
func (s *Service) Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.NewDecodeError(path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return "", domain.NewDecodeError(path, err)
	}
	if int64(len(b)) > s.maxBytes {
		return "", domain.NewDecodeError(path, fmt.Errorf("%w (%d bytes)", ErrTooLarge, s.maxBytes))
	}
	if len(b) == 0 {
		return "", domain.NewDecodeError(path, errors.New("file is empty"))
	}

	mime := http.DetectContentType(b)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", domain.NewDecodeError(path, fmt.Errorf("%w: detected %s", ErrNotImage, mime))
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

var _ domain.ImageLoader = (*Service)(nil)
