// Package chartio provides JSON import and export for assembled charts.
//
// The document format wraps a chart result together with the options
// that produced it, so an exported file can be recomputed, diffed, or
// re-imported later. Round-trip fidelity is exact for integral and
// enumerated fields; angles survive to well under an arcsecond.
//
//	{
//	  "version": 1,
//	  "options": { "instant": {...}, "latitude": ..., "longitude": ... },
//	  "result":  { "julian_day": ..., "positions": [...], ... }
//	}
package chartio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/grahalabs/jataka/pkg/pipeline"
)

// Version is the current document format version.
const Version = 1

// Document is the serialized form of a chart computation.
type Document struct {
	Version int              `json:"version"`
	Options pipeline.Options `json:"options"`
	Result  *pipeline.Result `json:"result"`
}

// WriteJSON encodes a chart document and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(opts pipeline.Options, result *pipeline.Result, w io.Writer) error {
	doc := Document{
		Version: Version,
		Options: opts,
		Result:  result,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a chart document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(opts pipeline.Options, result *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(opts, result, f)
}
