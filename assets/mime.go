package assets

import (
	"path"
	"strings"
)

const (
	mimeHTML        = "text/html; charset=UTF-8"
	mimeJSON        = "application/json"
	mimeOctetStream = "application/octet-stream"
)

var mimeTypes = map[string]string{
	"html":  mimeHTML,
	"css":   "text/css",
	"js":    "application/javascript",
	"json":  mimeJSON,
	"svg":   "image/svg+xml",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"webp":  "image/webp",
	"ico":   "image/vnd.microsoft.icon",
	"woff2": "application/font-woff2",
	"md":    "text/markdown; charset=UTF-8",
	"txt":   "text/plain; charset=UTF-8",
}

// MimeType classifies a bundle path by its extension, case insensitively.
func MimeType(relPath string) string {
	ext := strings.TrimPrefix(path.Ext(relPath), ".")
	if mime, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return mimeOctetStream
}

// HeadersFor returns the headers stored with a bundle file.
func HeadersFor(relPath string) Headers {
	return contentType(MimeType(relPath))
}

// EntryPageHeaders are stored with the entry page at both of its paths.
func EntryPageHeaders() Headers {
	return contentType(mimeHTML)
}
