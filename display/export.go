package display

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/sat"
)

// Format is an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrInvalidRequest, "unknown export format %q", s),
		"use --format json or --format yaml")
}

// DocumentView is the exported shape of a parsed document: entities in
// index order rather than keyed by index.
type DocumentView struct {
	ID        string                  `json:"id"`
	Path      string                  `json:"path"`
	Header    *sat.Header             `json:"header"`
	Counts    map[string]int          `json:"counts"`
	Entities  []sat.Entity            `json:"entities"`
	Skipped   []*sat.RecordError      `json:"skipped,omitempty"`
	Dangling  []sat.DanglingReference `json:"dangling_references,omitempty"`
	ReadError string                  `json:"read_error,omitempty"`
}

// NewDocumentView builds the export view of doc
func NewDocumentView(doc *sat.Document) *DocumentView {
	return &DocumentView{
		ID:        doc.ID.String(),
		Path:      doc.Path,
		Header:    doc.Header,
		Counts:    doc.Counts(),
		Entities:  doc.Ordered(),
		Skipped:   doc.Skipped,
		Dangling:  doc.DanglingReferences(),
		ReadError: doc.ReadError,
	}
}

// Export writes v to w in the given format. YAML output uses the same keys
// and field order as JSON.
func Export(w io.Writer, v interface{}, format Format) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal export")
	}

	switch format {
	case FormatJSON:
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		return writeYAML(w, data)
	}
	return errors.Wrapf(errors.ErrInvalidRequest, "unknown export format %q", format)
}

// writeYAML re-encodes JSON as block-style YAML, keeping key order
func writeYAML(w io.Writer, jsonData []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(jsonData, &node); err != nil {
		return errors.Wrap(err, "failed to read JSON as YAML")
	}
	clearStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return enc.Close()
}

// clearStyle drops the flow and quoting styles carried over from JSON
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// SummaryView is the short report printed by `satgraph parse`
type SummaryView struct {
	ID        string             `json:"id"`
	Path      string             `json:"path"`
	Header    *sat.Header        `json:"header"`
	Entities  int                `json:"entities"`
	Counts    map[string]int     `json:"counts"`
	Skipped   []*sat.RecordError `json:"skipped,omitempty"`
	Dangling  int                `json:"dangling_references"`
	ReadError string             `json:"read_error,omitempty"`
}

// NewSummaryView builds the parse summary of doc
func NewSummaryView(doc *sat.Document) *SummaryView {
	return &SummaryView{
		ID:        doc.ID.String(),
		Path:      doc.Path,
		Header:    doc.Header,
		Entities:  len(doc.Entities),
		Counts:    doc.Counts(),
		Skipped:   doc.Skipped,
		Dangling:  len(doc.DanglingReferences()),
		ReadError: doc.ReadError,
	}
}
