package mime

import (
	"strings"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	XML            MIME = "text/xml"
	JSON           MIME = "application/json"
	YAML           MIME = "application/yaml"
	TOML           MIME = "application/toml"
	PDF            MIME = "application/pdf"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	Multipart      MIME = "multipart/form-data"
	GZIP           MIME = "application/gzip"
	ZIP            MIME = "application/zip"
	CSS            MIME = "text/css"
	JS             MIME = "text/javascript"
	PNG            MIME = "image/png"
	SVG            MIME = "image/svg+xml"
)

// Complies returns whether two MIMEs are compatible. Empty MIME is
// considered compatible with any other MIME
func Complies(mime MIME, with string) bool {
	// get rid of parameters if any
	with, _, _ = strings.Cut(with, ";")
	with = strings.TrimSpace(with)
	return len(with) == 0 || strings.EqualFold(with, mime)
}
