package handlers

import (
	"fmt"
	"net/http"
)

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload stores an image in object storage and returns its URL. Posts
// reference uploaded images by URL, so uploads happen before submission.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("File too large (max %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Failed to parse upload", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	url, err := h.Storage.UploadImage(r.Context(), user.UserID, header.Filename, contentType, file, header.Size)
	if err != nil {
		WriteError(w, "Failed to upload image", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, UploadResponse{
		URL:      url,
		FileName: header.Filename,
		FileSize: header.Size,
	}, http.StatusCreated)
}
