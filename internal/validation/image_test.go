package validation

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox-dev/recipebox/internal/errors"
)

func encode(t *testing.T, enc func(buf *bytes.Buffer, img image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		payload := encode(t, func(buf *bytes.Buffer, img image.Image) error {
			return png.Encode(buf, img)
		})
		ext, err := ValidateImage(payload)
		require.NoError(t, err)
		assert.Equal(t, ".png", ext)
	})

	t.Run("jpeg maps to .jpg", func(t *testing.T) {
		payload := encode(t, func(buf *bytes.Buffer, img image.Image) error {
			return jpeg.Encode(buf, img, nil)
		})
		ext, err := ValidateImage(payload)
		require.NoError(t, err)
		assert.Equal(t, ".jpg", ext)
	})

	t.Run("arbitrary bytes rejected with 400", func(t *testing.T) {
		_, err := ValidateImage([]byte("notimage"))
		require.Error(t, err)
		e, ok := err.(*errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		_, err := ValidateImage(nil)
		require.Error(t, err)
	})
}
