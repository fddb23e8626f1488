package uploads

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/electromaison/storefront-api/storage"
)

// Result is the per-file outcome. A failed file carries Error and an
// empty URL; the rest of the batch is unaffected.
type Result struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// HandleUpload stores each submitted image sequentially under a
// generated name and returns the permanent URL per file.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		jsonError(w, "No images submitted", http.StatusBadRequest)
		return
	}

	results := make([]Result, 0, len(files))
	for _, header := range files {
		result := Result{Filename: header.Filename}

		f, err := header.Open()
		if err != nil {
			result.Error = "failed to read file"
			results = append(results, result)
			continue
		}

		path := "products/" + uuid.NewString() + extension(header.Filename)
		url, err := h.store.Upload(f, path)
		f.Close()
		if err != nil {
			log.Printf("error uploading %s: %v", header.Filename, err)
			result.Error = "upload failed"
		} else {
			result.URL = url
		}
		results = append(results, result)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]Result{"results": results})
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ".jpg"
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
