package smile

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPhotoBytes bounds the decoded photo.
const MaxPhotoBytes = 5 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Photo validation errors.
var (
	ErrNoPhoto          = errors.New("no photo data")
	ErrInvalidPhoto     = errors.New("photo is not a base64 data URI")
	ErrPhotoTooLarge    = errors.New("photo too large")
	ErrUnsupportedPhoto = errors.New("unsupported photo type")
)

// Photo is a decoded, sniffed image.
type Photo struct {
	MimeType string
	Data     []byte
}

// DataURI re-encodes the photo using its sniffed type.
func (p Photo) DataURI() string {
	return "data:" + p.MimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// ParsePhoto decodes a data:<mime>;base64,<payload> URI. The declared mime
// type is ignored; the payload is sniffed instead.
func ParsePhoto(uri string) (Photo, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Photo{}, ErrNoPhoto
	}
	if !strings.HasPrefix(uri, "data:") {
		return Photo{}, ErrInvalidPhoto
	}
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return Photo{}, ErrInvalidPhoto
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxPhotoBytes+3 {
		return Photo{}, ErrPhotoTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Photo{}, ErrInvalidPhoto
	}
	if len(data) == 0 {
		return Photo{}, ErrNoPhoto
	}
	if len(data) > MaxPhotoBytes {
		return Photo{}, ErrPhotoTooLarge
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return Photo{MimeType: allowed, Data: data}, nil
		}
	}
	return Photo{}, ErrUnsupportedPhoto
}

// UserMessage returns the message shown for a ParsePhoto error, or "" when
// err did not come from ParsePhoto.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoPhoto):
		return "No photo data provided."
	case errors.Is(err, ErrInvalidPhoto):
		return "Photo must be a base64 data URI."
	case errors.Is(err, ErrPhotoTooLarge):
		return "Photo is too large. The limit is 5 MB."
	case errors.Is(err, ErrUnsupportedPhoto):
		return "Photo must be a JPEG, PNG or WebP image."
	default:
		return ""
	}
}
