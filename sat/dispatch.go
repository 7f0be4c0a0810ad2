package sat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// extractor builds one entity from the data portion of a record: everything
// after "-<index> <type>".
type extractor func(d *Dispatcher, b Base, data string) (Entity, error)

// extractors is keyed by the exact type keyword. Short forms written by
// older exporters map to the same extractor.
var extractors = map[string]extractor{
	"body":     extractBody,
	"lump":     extractLump,
	"shell":    extractShell,
	"subshell": extractSubshell,
	"face":     extractFace,
	"loop":     extractLoop,
	"coedge":   extractCoedge,
	"tcoedge":  extractCoedge,
	"edge":     extractEdge,
	"tedge":    extractEdge,
	"vertex":   extractVertex,
	"tvertex":  extractVertex,
	"point":    extractPoint,

	"straight-curve": extractStraight,
	"straight":       extractStraight,
	"ellipse-curve":  extractEllipse,
	"ellipse":        extractEllipse,
	"intcurve-curve": extractIntcurve,
	"intcurve":       extractIntcurve,
	"pcurve":         extractPCurve,

	"plane-surface":    extractPlane,
	"plane":            extractPlane,
	"cone-surface":     extractCone,
	"cone":             extractCone,
	"cylinder-surface": extractCylinder,
	"cylinder":         extractCylinder,
	"sphere-surface":   extractSphere,
	"sphere":           extractSphere,
	"torus-surface":    extractTorus,
	"torus":            extractTorus,
	"spline-surface":   extractSplineSurface,
	"spline":           extractSplineSurface,

	"transform": extractTransform,
}

// SupportedTypes lists the type keywords with a dedicated extractor, sorted.
// Attribute types are matched by substring and are not listed.
func SupportedTypes() []string {
	out := make([]string, 0, len(extractors))
	for k := range extractors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Dispatcher routes records to per-type extractors. It holds no state
// between records and is safe for concurrent use.
type Dispatcher struct {
	log           *zap.SugaredLogger
	observer      Observer
	previewLength int
}

// NewDispatcher creates a Dispatcher. A nil logger or observer is replaced
// with a no-op.
func NewDispatcher(log *zap.SugaredLogger, observer Observer, previewLength int) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	return &Dispatcher{log: log, observer: observer, previewLength: previewLength}
}

// Dispatch parses one assembled record. Failures come back as *RecordError.
func (d *Dispatcher) Dispatch(text string) (Entity, error) {
	ent, rerr := d.dispatch(Record{Text: text})
	if rerr != nil {
		return nil, rerr
	}
	return ent, nil
}

// dispatch is the per-record isolation boundary: extractor errors and
// panics become a RecordError and never escape.
func (d *Dispatcher) dispatch(rec Record) (ent Entity, rerr *RecordError) {
	index, typ, data, err := parseRecordHead(rec.Text)
	if err != nil {
		return nil, NewRecordError(ErrorKindSyntax, "unreadable record head").
			WithUnderlying(err).
			WithLine(rec.Line).
			WithPreview(rec.Text, d.previewLength)
	}

	defer func() {
		if r := recover(); r != nil {
			ent = nil
			rerr = NewRecordError(ErrorKindPanic, "extractor panicked").
				WithUnderlying(errors.Newf("%v", r)).
				WithSeverity(SeverityError).
				WithEntity(index, typ).
				WithLine(rec.Line).
				WithPreview(rec.Text, d.previewLength)
		}
	}()

	b := Base{ID: index, Kind: typ}
	extract, ok := lookupExtractor(typ)
	if !ok {
		d.log.Debugw("Unsupported entity type, keeping generic stub",
			logger.FieldEntityIndex, index,
			logger.FieldEntityType, typ,
		)
		return &Generic{Base: b}, nil
	}

	ent, err = extract(d, b, data)
	if err != nil {
		return nil, NewRecordError(ErrorKindExtract, "cannot extract fields").
			WithUnderlying(err).
			WithEntity(index, typ).
			WithLine(rec.Line).
			WithPreview(rec.Text, d.previewLength)
	}
	return ent, nil
}

func lookupExtractor(typ string) (extractor, bool) {
	if fn, ok := extractors[typ]; ok {
		return fn, true
	}
	if strings.Contains(typ, "attrib") {
		return extractAttrib, true
	}
	return nil, false
}

// parseRecordHead splits "-<index> <type> <data>". data keeps its newlines.
func parseRecordHead(text string) (int, string, string, error) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "-") {
		return 0, "", "", errors.NewMalformedRecordError("record does not start with '-'")
	}
	fields := splitFieldsN(t[1:], 3)
	if len(fields) < 2 {
		return 0, "", "", errors.NewMalformedRecordError("record has no type keyword")
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", "", errors.NewMalformedRecordError("index %q is not an integer", fields[0])
	}
	data := ""
	if len(fields) == 3 {
		data = fields[2]
	}
	return index, fields[1], data, nil
}

// splitBlock separates "<head> { <block> } <tail>". ok is false when data
// has no brace block.
func splitBlock(data string) (head, block, tail string, ok bool) {
	open := strings.Index(data, "{")
	if open < 0 {
		return data, "", "", false
	}
	end := strings.LastIndex(data, "}")
	if end < open {
		return data[:open], data[open+1:], "", true
	}
	return data[:open], data[open+1 : end], data[end+1:], true
}

// reportSpline logs a spline whose control polygon came out short. Only a
// spline left with no control points at all counts as rejected.
func (d *Dispatcher) reportSpline(b Base, subtype, issue string, kept int) {
	if issue == "" {
		return
	}
	fields := []interface{}{
		logger.FieldEntityIndex, b.ID,
		logger.FieldEntityType, b.Kind,
		logger.FieldSubtype, subtype,
		logger.FieldError, issue,
	}
	if kept > 0 {
		d.log.Warnw("Spline control polygon incomplete", append(fields, logger.FieldCount, kept)...)
		return
	}
	d.log.Errorw("Spline control points rejected", fields...)
	d.observer.SplineRejected(subtype)
}

func malformed(b Base, need int) error {
	return errors.WithHint(
		errors.NewMalformedRecordError("%s needs %d numeric values", b.Kind, need),
		fmt.Sprintf("entity %d may be truncated or from an unsupported exporter", b.ID))
}
