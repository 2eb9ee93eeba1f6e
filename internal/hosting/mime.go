package hosting

import (
	"path/filepath"
	"strings"
)

// mimeTypes is the fixed upload allow-list. A file may be uploaded only
// if its extension has an entry here, and the same table drives the
// Content-Type on the serve path.
var mimeTypes = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"css":   "text/css",
	"js":    "application/javascript",
	"json":  "application/json",
	"txt":   "text/plain",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"png":   "image/png",
	"gif":   "image/gif",
	"svg":   "image/svg+xml",
	"ico":   "image/x-icon",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"eot":   "application/vnd.ms-fontobject",
	"pdf":   "application/pdf",
	"xml":   "application/xml",
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// allowedType reports whether the file's extension is on the allow-list.
func allowedType(name string) bool {
	_, ok := mimeTypes[extension(name)]
	return ok
}

// MimeFor maps a filename to its Content-Type via the extension table.
// Unmapped extensions fall back to application/octet-stream.
func MimeFor(name string) string {
	if mt, ok := mimeTypes[extension(name)]; ok {
		return mt
	}
	return "application/octet-stream"
}
