package ontology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported input formats.
const (
	FormatAuto = "auto"
	FormatOBO  = "obo"
	FormatOWL  = "owl"
	FormatJSON = "json"
)

// DetectFormat resolves "auto" from the file extension. It returns "" when
// the extension is not recognized.
func DetectFormat(path, explicit string) string {
	if explicit != "" && explicit != FormatAuto {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obo":
		return FormatOBO
	case ".owl", ".xml", ".rdf":
		return FormatOWL
	case ".json":
		return FormatJSON
	}
	return ""
}

// LoadFile opens and parses an ontology file in the given format.
func LoadFile(path, format string) (*Ontology, error) {
	fmtName := DetectFormat(path, format)
	if fmtName == "" {
		return nil, fmt.Errorf("cannot detect format for %q, set format to obo, owl or json", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch fmtName {
	case FormatOBO:
		return ParseOBO(f)
	case FormatOWL:
		return ParseOWL(f)
	case FormatJSON:
		return ReadJSON(f)
	}
	return nil, fmt.Errorf("unsupported ontology format %q", fmtName)
}
