package ontology

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

const writerBufferSize = 256 * 1024 // 256 KB

// WriteJSON writes the ontology snapshot as JSON to the given writer.
func WriteJSON(ont *Ontology, w io.Writer) error {
	bw := bufio.NewWriterSize(w, writerBufferSize)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ont); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteJSONFile writes the ontology snapshot as JSON to the given file path.
func WriteJSONFile(ont *Ontology, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(ont, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON reads a snapshot previously written by WriteJSON.
func ReadJSON(r io.Reader) (*Ontology, error) {
	var ont Ontology
	dec := json.NewDecoder(bufio.NewReaderSize(r, writerBufferSize))
	if err := dec.Decode(&ont); err != nil {
		return nil, err
	}
	return &ont, nil
}
