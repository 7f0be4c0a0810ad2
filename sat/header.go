package sat

import (
	"io"
	"strconv"
	"strings"

	"github.com/teranos/satgraph/errors"
)

const (
	DefaultUnitsCode  = 1000
	DefaultResolution = 1e-6
	DefaultTolerance  = 1e-10
)

// Header is the fixed three-line preamble of a SAT file.
type Header struct {
	VersionCode int          `json:"version_code"`
	NumRecords  int          `json:"num_records"`
	NumEntities int          `json:"num_entities"`
	Flags       int          `json:"flags"`
	ProductID   string       `json:"product_id"`
	ACISVersion *ACISVersion `json:"acis_version,omitempty"`
	Platform    string       `json:"platform,omitempty"`
	Date        string       `json:"date,omitempty"`
	UnitsCode   int          `json:"units_code"`
	Resolution  float64      `json:"resolution"`
	Tolerance   float64      `json:"tolerance"`
}

// ReadHeader consumes the first three lines of r.
func ReadHeader(r io.Reader) (*Header, error) {
	return readHeader(newLineReader(r, 0))
}

func readHeader(lr *lineReader) (*Header, error) {
	var lines [3]string
	for i := range lines {
		text, ok := lr.next()
		if !ok {
			if err := lr.err(); err != nil {
				return nil, errors.Wrapf(errors.ErrMalformedHeader, "reading header line %d: %v", i+1, err)
			}
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrMalformedHeader, "file ends after %d header lines", i),
				"SAT files start with three header lines: version, product, units")
		}
		lines[i] = text
	}

	h := &Header{
		UnitsCode:  DefaultUnitsCode,
		Resolution: DefaultResolution,
		Tolerance:  DefaultTolerance,
	}

	first := strings.Fields(lines[0])
	if len(first) == 0 {
		return nil, errors.Wrap(errors.ErrMalformedHeader, "missing version code")
	}
	code, err := strconv.Atoi(first[0])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedHeader, "version code %q is not an integer", first[0])
	}
	h.VersionCode = code
	h.NumRecords = intAt(first, 1, 0)
	h.NumEntities = intAt(first, 2, 0)
	h.Flags = intAt(first, 3, 0)

	readProductLine(h, lines[1])

	third := strings.Fields(lines[2])
	h.UnitsCode = intAt(third, 0, DefaultUnitsCode)
	h.Resolution = floatAt(third, 1, DefaultResolution)
	h.Tolerance = floatAt(third, 2, DefaultTolerance)

	return h, nil
}

// readProductLine splits "<product> ACIS <version> <platform> <date...>".
func readProductLine(h *Header, line string) {
	product, rest, found := strings.Cut(line, "ACIS")
	if !found {
		h.ProductID = strings.TrimSpace(line)
		return
	}
	h.ProductID = strings.TrimSpace(product)
	tokens := strings.Fields(rest)
	if len(tokens) > 0 {
		h.ACISVersion = ParseACISVersion(tokens[0])
	}
	h.Platform = wordAt(tokens, 1, "")
	if len(tokens) > 2 {
		h.Date = strings.Join(tokens[2:], " ")
	}
}

func floatAt(tokens []string, i int, fallback float64) float64 {
	if i < 0 || i >= len(tokens) {
		return fallback
	}
	f, err := strconv.ParseFloat(tokens[i], 64)
	if err != nil {
		return fallback
	}
	return f
}
