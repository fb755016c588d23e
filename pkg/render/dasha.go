// Package render turns a dasha tree into Graphviz diagrams.
//
// The tree is first serialized to DOT, then rendered to SVG with the
// embedded Graphviz engine. Node identity encodes the lord chain
// (e.g. "Venus/Sun/Moon"), so the DOT output is deterministic and
// diffable across runs.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/grahalabs/jataka/pkg/dasha"
)

// Options configures dasha tree rendering.
type Options struct {
	// Detailed includes period years and Julian Day spans in labels.
	// When false, only the lord name is shown.
	Detailed bool

	// ActiveJD highlights the chain of periods containing this Julian
	// Day. Zero disables highlighting.
	ActiveJD float64
}

// ToDOT converts a dasha tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(t dasha.Tree, opts Options) string {
	active := map[string]bool{}
	if opts.ActiveJD != 0 {
		path := ""
		for _, p := range t.Active(opts.ActiveJD) {
			path = childID(path, p)
			active[path] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph dasha {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, p := range t.Periods {
		writePeriod(&buf, "", p, opts, active)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writePeriod emits one node and its edges, depth-first.
func writePeriod(buf *bytes.Buffer, parent string, p dasha.Period, opts Options, active map[string]bool) {
	id := childID(parent, p)

	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed))}
	if active[id] {
		attrs = append(attrs, "fillcolor=lightgoldenrod", "penwidth=2")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

	if parent != "" {
		fmt.Fprintf(buf, "  %q -> %q;\n", parent, id)
	}
	for _, c := range p.Children {
		writePeriod(buf, id, c, opts, active)
	}
}

func childID(parent string, p dasha.Period) string {
	if parent == "" {
		return string(p.Lord)
	}
	return parent + "/" + string(p.Lord)
}

func fmtLabel(p dasha.Period, detailed bool) string {
	if !detailed {
		return string(p.Lord)
	}
	return fmt.Sprintf("%s\n%s: %.2fy\nJD %.1f - %.1f",
		p.Lord, p.Level, p.Years, p.Start, p.End)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root so the diagram starts at the
// origin, which keeps embedding in HTML predictable.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
