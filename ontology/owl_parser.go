package ontology

import (
	"encoding/xml"
	"io"
	"strings"
)

// OWL/RDF namespace URIs
const (
	nsOWL      = "http://www.w3.org/2002/07/owl#"
	nsRDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsRDFS     = "http://www.w3.org/2000/01/rdf-schema#"
	nsOBO      = "http://purl.obolibrary.org/obo/"
	nsOBOInOwl = "http://www.geneontology.org/formats/oboInOwl#"
)

// owlProperties maps OBO relation IRIs to the short names used in OBO files.
var owlProperties = map[string]string{
	"BFO:0000050": RelPartOf,
	"part_of":     RelPartOf,
}

// ParseOWL parses an OWL/RDF-XML export of GO, SBO or ChEBI.
func ParseOWL(r io.Reader) (*Ontology, error) {
	decoder := xml.NewDecoder(r)
	pool := newInternPool()

	ont := &Ontology{
		Terms: make([]Term, 0, initialTermCapacity),
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case matchElement(se, nsOWL, "Class"):
			ont.Terms = appendTerm(ont.Terms, parseOWLClass(decoder, se, pool))
		case matchElement(se, nsOWL, "Ontology"):
			parseOWLOntologyHeader(decoder, se, ont)
		case matchElement(se, nsRDF, "RDF"):
			// Container element, descend into it.
		default:
			if err := decoder.Skip(); err != nil {
				return nil, err
			}
		}
	}

	return ont, nil
}

func matchElement(se xml.StartElement, ns, local string) bool {
	return se.Name.Space == ns && se.Name.Local == local
}

func getAttr(se xml.StartElement, ns, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == ns && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// oboIDFromURI converts http://purl.obolibrary.org/obo/GO_0008150 to GO:0008150.
func oboIDFromURI(uri string) string {
	if id, ok := strings.CutPrefix(uri, nsOBO); ok {
		if idx := strings.IndexByte(id, '_'); idx >= 0 {
			return id[:idx] + ":" + id[idx+1:]
		}
		return id
	}
	return uri
}

func parseOWLOntologyHeader(decoder *xml.Decoder, se xml.StartElement, ont *Ontology) {
	if about := getAttr(se, nsRDF, "about"); about != "" {
		ont.Ontology = about
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "versionIRI" {
				if v := getAttr(t, nsRDF, "resource"); v != "" {
					ont.DataVersion = v
				}
			}
			_ = decoder.Skip()
		case xml.EndElement:
			return
		}
	}
}

func parseOWLClass(decoder *xml.Decoder, se xml.StartElement, pool *internPool) Term {
	var t Term

	if about := getAttr(se, nsRDF, "about"); about != "" {
		t.ID = oboIDFromURI(about)
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return t
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDFS, "label"):
				t.Name = readCharData(decoder)
			case matchElement(el, nsOBOInOwl, "hasOBONamespace"):
				t.Namespace = pool.get(readCharData(decoder))
			case matchElement(el, nsOBOInOwl, "id"):
				if id := readCharData(decoder); id != "" {
					t.ID = id
				}
			case matchElement(el, nsRDFS, "subClassOf"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					t.Relationships = append(t.Relationships, Relationship{
						Type:     pool.get(RelIsA),
						TargetID: oboIDFromURI(res),
					})
					_ = decoder.Skip()
				} else {
					rel := parseOWLRestriction(decoder, pool)
					if rel.Type != "" && rel.TargetID != "" {
						t.Relationships = append(t.Relationships, rel)
					}
				}
			case matchElement(el, nsOWL, "deprecated"):
				t.IsObsolete = readCharData(decoder) == "true"
			default:
				_ = decoder.Skip()
			}
		case xml.EndElement:
			return t
		}
	}
}

// parseOWLRestriction reads the owl:Restriction inside an rdfs:subClassOf
// and returns it as a relationship (onProperty -> someValuesFrom).
func parseOWLRestriction(decoder *xml.Decoder, pool *internPool) Relationship {
	var rel Relationship
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return rel
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsOWL, "Restriction"):
				depth++
				continue
			case matchElement(el, nsOWL, "onProperty"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					prop := oboIDFromURI(res)
					if short, ok := owlProperties[prop]; ok {
						prop = short
					}
					rel.Type = pool.get(prop)
				}
			case matchElement(el, nsOWL, "someValuesFrom"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					rel.TargetID = oboIDFromURI(res)
				}
			}
			_ = decoder.Skip()
		case xml.EndElement:
			depth--
			if depth < 0 {
				return rel
			}
		}
	}
}

func readCharData(decoder *xml.Decoder) string {
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return strings.TrimSpace(sb.String())
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			sb.WriteString(readCharData(decoder))
		case xml.EndElement:
			return strings.TrimSpace(sb.String())
		}
	}
}
