package mime

import (
	"path/filepath"
	"strings"
)

var Extension = map[string]MIME{
	".css":  CSS,
	".gz":   GZIP,
	".htm":  HTML,
	".html": HTML,
	".js":   JS,
	".json": JSON,
	".pdf":  PDF,
	".png":  PNG,
	".svg":  SVG,
	".toml": TOML,
	".txt":  Plain,
	".xml":  XML,
	".yaml": YAML,
	".yml":  YAML,
	".zip":  ZIP,
}

// ByFilename guesses the MIME by the file extension, falling back to OctetStream.
func ByFilename(name string) MIME {
	if mime, found := Extension[strings.ToLower(filepath.Ext(name))]; found {
		return mime
	}

	return OctetStream
}
