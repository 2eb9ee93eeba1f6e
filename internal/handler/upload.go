package handler

import (
	"net/http"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/dvloasia/pagehost/internal/middleware"
	"github.com/dvloasia/pagehost/internal/site"
	"github.com/go-chi/chi/v5"
)

// UploadHandler handles multipart file uploads into a project.
type UploadHandler struct {
	site     *site.Service
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler. maxBytes caps the whole
// multipart request body.
func NewUploadHandler(site *site.Service, maxBytes int64) *UploadHandler {
	return &UploadHandler{site: site, maxBytes: maxBytes}
}

// Upload accepts a multipart form with one or more "files" parts and
// reports the per-file outcome. A rejected file never aborts the batch.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	projectID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files provided"})
		return
	}

	files := make([]domain.IncomingFile, 0, len(headers))
	var closers []func() error
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			// The part could not be read back; reported per-file, not fatal.
			files = append(files, domain.IncomingFile{Name: fh.Filename, TransferErr: err})
			continue
		}
		closers = append(closers, f.Close)
		files = append(files, domain.IncomingFile{Name: fh.Filename, Content: f})
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	result, err := h.site.UploadFiles(r.Context(), projectID, user.ID, files)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
