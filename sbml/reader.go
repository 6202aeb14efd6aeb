// Package sbml reads the annotatable entities of an SBML document: the
// model, its compartments, species and reactions, each with its id, its
// native sboTerm attribute and its raw <annotation> markup.
package sbml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/nodeadmin/sbmate/annotation"
)

// namespacePrefix is shared by the core namespaces of every SBML level.
const namespacePrefix = "http://www.sbml.org/sbml/level"

// ErrNotSBML is returned when the root element is not <sbml>.
var ErrNotSBML = errors.New("not an SBML document")

// Document is the part of an SBML file the metrics need. Entities are in
// document order.
type Document struct {
	Level     int
	Version   int
	ModelID   string
	ModelName string
	Entities  []annotation.RawEntity
}

// ReadFile reads and parses the SBML file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("sbml").Code("read_failed").With("path", path).Wrap(err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, oops.In("sbml").With("path", path).Wrap(err)
	}
	return doc, nil
}

// Read parses an SBML document from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse walks the document once. Annotation markup is sliced out of data
// verbatim so namespace declarations and prefixes stay as written.
func Parse(data []byte) (*Document, error) {
	errb := oops.In("sbml").Code("malformed_model")
	decoder := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{}
	// One frame per open element: the index of the entity it opened, or -1.
	var stack []int
	seenRoot := false

	for {
		offset := decoder.InputOffset()
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errb.Wrapf(err, "decode SBML")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if !seenRoot {
				if el.Name.Local != "sbml" || !strings.HasPrefix(el.Name.Space, namespacePrefix) {
					return nil, errb.With("root", el.Name.Local).Wrap(ErrNotSBML)
				}
				seenRoot = true
				doc.Level = intAttr(el, "level")
				doc.Version = intAttr(el, "version")
				stack = append(stack, -1)
				continue
			}

			if len(stack) == 0 {
				return nil, errb.Errorf("content after the <sbml> element")
			}
			parent := stack[len(stack)-1]
			if !strings.HasPrefix(el.Name.Space, namespacePrefix) {
				if err := decoder.Skip(); err != nil {
					return nil, errb.Wrapf(err, "decode SBML")
				}
				continue
			}

			if el.Name.Local == "annotation" {
				if err := decoder.Skip(); err != nil {
					return nil, errb.Wrapf(err, "decode annotation")
				}
				if parent >= 0 {
					doc.Entities[parent].Annotation = string(data[offset:decoder.InputOffset()])
				}
				continue
			}

			frame := -1
			if kind, ok := annotation.KindFromElement(el.Name.Local); ok {
				frame = len(doc.Entities)
				doc.Entities = append(doc.Entities, annotation.RawEntity{
					ID:      attr(el, "id"),
					Kind:    kind,
					SBOTerm: attr(el, "sboTerm"),
				})
				if kind == annotation.KindModel {
					doc.ModelID = attr(el, "id")
					doc.ModelName = attr(el, "name")
				}
			}
			stack = append(stack, frame)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !seenRoot {
		return nil, errb.Wrap(ErrNotSBML)
	}
	return doc, nil
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func intAttr(se xml.StartElement, local string) int {
	n, _ := strconv.Atoi(attr(se, local))
	return n
}
