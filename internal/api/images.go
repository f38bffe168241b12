package api

import (
	"net/http"

	"wardrobe/internal/imaging"
)

// maxUploadSize limits a single image-processing request.
const maxUploadSize = 25 << 20

// ImagesHandler handles image processing for item photos.
type ImagesHandler struct{}

// imageResult is the outcome for one uploaded file. Exactly one of
// DataURL and Error is set.
type imageResult struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Process handles POST /api/images. Each file in the multipart form is
// processed independently: one corrupt photo does not discard the rest
// of the batch.
func (h *ImagesHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		jsonError(w, http.StatusBadRequest, "at least one image file required")
		return
	}

	results := make([]imageResult, 0, len(files))
	for _, header := range files {
		result := imageResult{Name: header.Filename}

		file, err := header.Open()
		if err != nil {
			result.Error = "failed to open file"
			results = append(results, result)
			continue
		}

		dataURL, err := imaging.Process(file)
		file.Close()
		if err != nil {
			result.Error = err.Error()
		} else {
			result.DataURL = dataURL
		}
		results = append(results, result)
	}

	jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}
