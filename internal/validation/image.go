// Package validation checks uploaded payloads before anything is
// written to storage.
package validation

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/recipebox-dev/recipebox/internal/errors"
)

// ValidateImage verifies that payload decodes as a real image and
// returns the file extension for the detected format.
func ValidateImage(payload []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return "", &errors.ErrorWithStatusCode{
			Message:    "Upload a valid image. The file you uploaded was either not an image or a corrupted image",
			StatusCode: http.StatusBadRequest,
		}
	}
	if format == "jpeg" {
		return ".jpg", nil
	}
	return "." + format, nil
}
