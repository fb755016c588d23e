package chartio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a chart document from r.
//
// ReadJSON returns an error if the JSON is malformed, the version is
// unknown, or the document has no result section. It does not revalidate
// the embedded chart: an imported result is treated as the faithful
// record of a past computation. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", doc.Version, Version)
	}
	if doc.Result == nil {
		return nil, fmt.Errorf("document has no result")
	}
	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return doc, nil
}
