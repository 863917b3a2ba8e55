package handler

import (
	"io"
	"net/http"

	"github.com/recipebox-dev/recipebox/internal/utils"
)

// UploadImage attaches an uploaded image to the recipe. The payload is
// the multipart form field "image"; non-image payloads are rejected
// before anything is written to storage.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.recipeRequest(w, r)
	if !ok {
		return
	}

	// 1 MiB of headroom for the multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Public.MaxImageSizeBytes+1<<20)
	if err := r.ParseMultipartForm(h.cfg.Public.MaxImageSizeBytes); err != nil {
		http.Error(w, "Image exceeds the allowed size or the form is malformed", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image field in multipart form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read uploaded image", http.StatusBadRequest)
		return
	}

	recipe, err := h.recipes.UploadImage(*user, id, payload)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeDetailResponse(recipe))
}
