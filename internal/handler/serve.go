package handler

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/dvloasia/pagehost/internal/site"
	"github.com/go-chi/chi/v5"
)

// ServeHandler is the public, unauthenticated hosting boundary: it maps
// /sites/{subdomain}/{file} onto a tenant directory.
type ServeHandler struct {
	site *site.Service
}

// NewServeHandler creates a new ServeHandler.
func NewServeHandler(site *site.Service) *ServeHandler {
	return &ServeHandler{site: site}
}

// placeholderPage is rendered when a project exists but has no servable
// content yet.
const placeholderPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%[1]s</title></head>
<body>
<h1>Welcome to %[1]s</h1>
<p>This site is hosted on pagehost.</p>
<p>Upload an index.html file to publish your content.</p>
</body>
</html>
`

// Serve streams a resolved file byte-for-byte with a Content-Type
// derived from its extension. File content is never interpreted or
// transformed.
func (h *ServeHandler) Serve(w http.ResponseWriter, r *http.Request) {
	subdomain := chi.URLParam(r, "subdomain")
	requested := chi.URLParam(r, "*")

	served, project, err := h.site.Serve(r.Context(), subdomain, requested)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "site not found"})
		return
	case errors.Is(err, domain.ErrNoContent):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, placeholderPage, html.EscapeString(project.Name))
		return
	case err != nil:
		writeDomainError(w, err)
		return
	}

	f, err := os.Open(served.Path)
	if err != nil {
		writeDomainError(w, &domain.StorageError{Op: "open served file", Err: err})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", served.ContentType)
	io.Copy(w, f)
}
