// Package sat reads ACIS SAT text files into an index-addressable entity graph.
//
// Parsing fails only when the file cannot be opened or the three-line header
// cannot be read. Every other problem is isolated to the record it occurs
// in: the record is dropped, logged, and listed in Document.Skipped.
//
//	p := sat.NewParser(sat.WithLogger(logger.ComponentLogger("sat.parser")))
//	doc, err := p.Parse(ctx, "part.sat")
//	if err != nil {
//		return err
//	}
//	for _, face := range doc.Faces() {
//		surface, _ := doc.Resolve(face.Surface)
//	}
package sat

import (
	"context"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// DefaultPreviewLength is how much of a dropped record is kept for logs.
const DefaultPreviewLength = 100

// Parser turns SAT files into Documents. A Parser carries no per-parse
// state and can be reused.
type Parser struct {
	log           *zap.SugaredLogger
	observer      Observer
	workers       int
	previewLength int
	maxLineBytes  int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithObserver receives parse events, e.g. for metrics.
func WithObserver(o Observer) Option {
	return func(p *Parser) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithWorkers sets how many records are dispatched concurrently. Scanning
// stays sequential. Values below 2 dispatch on the calling goroutine.
func WithWorkers(n int) Option {
	return func(p *Parser) { p.workers = n }
}

// WithPreviewLength sets how many bytes of a dropped record are logged.
func WithPreviewLength(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.previewLength = n
		}
	}
}

// WithMaxLineBytes bounds a single physical line.
func WithMaxLineBytes(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLineBytes = n
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		log:           zap.NewNop().Sugar(),
		observer:      NopObserver{},
		workers:       1,
		previewLength: DefaultPreviewLength,
		maxLineBytes:  DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the SAT file at path.
func (p *Parser) Parse(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to open %s", path),
			"check the path and that the file is an ACIS text (.sat) export")
	}
	defer f.Close()
	return p.ParseReader(ctx, f, path)
}

// dispatched is one record's outcome, ordered by Seq when merged.
type dispatched struct {
	rec  Record
	ent  Entity
	rerr *RecordError
}

// ParseReader reads a SAT stream. name labels the Document and log lines.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, name string) (*Document, error) {
	start := time.Now()
	id := uuid.New()
	ctx = logger.WithParseID(ctx, id.String())
	log := logger.LoggerFromContext(ctx, p.log).With(logger.FieldFile, name)

	lr := newLineReader(r, p.maxLineBytes)
	header, err := readHeader(lr)
	if err != nil {
		log.Errorw("Cannot read SAT header", logger.FieldError, err)
		return nil, errors.Wrapf(err, "failed to parse %s", name)
	}
	log.Debugw("Read SAT header",
		"version_code", header.VersionCode,
		"product_id", header.ProductID,
		"units_code", header.UnitsCode,
	)

	doc := newDocument(id, name, header)
	disp := NewDispatcher(log, p.observer, p.previewLength)
	sc := newRecordScanner(lr)

	if p.workers > 1 {
		err = p.dispatchParallel(ctx, sc, disp, doc, log)
	} else {
		err = p.dispatchSequential(ctx, sc, disp, doc, log)
	}
	if err != nil {
		return nil, err
	}

	if err := sc.Err(); err != nil {
		doc.ReadError = err.Error()
		log.Errorw("Stopped reading records early", logger.FieldError, err)
	}

	elapsed := time.Since(start)
	p.observer.ParseFinished(elapsed, len(doc.Entities))
	log.Infow("Parsed SAT file",
		logger.FieldCount, len(doc.Entities),
		logger.FieldSkipped, len(doc.Skipped),
		logger.FieldDurationMS, elapsed.Milliseconds(),
	)
	return doc, nil
}

func (p *Parser) dispatchSequential(ctx context.Context, sc *RecordScanner, disp *Dispatcher, doc *Document, log *zap.SugaredLogger) error {
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "parse cancelled")
		}
		rec := sc.Record()
		ent, rerr := disp.dispatch(rec)
		p.collect(doc, dispatched{rec: rec, ent: ent, rerr: rerr}, log)
	}
	return nil
}

// dispatchParallel fans records out to a bounded errgroup and merges the
// results in record order, so duplicate indices resolve exactly as in the
// sequential path.
func (p *Parser) dispatchParallel(ctx context.Context, sc *RecordScanner, disp *Dispatcher, doc *Document, log *zap.SugaredLogger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var (
		mu      sync.Mutex
		results []dispatched
	)
	for sc.Scan() {
		if gctx.Err() != nil {
			break
		}
		rec := sc.Record()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ent, rerr := disp.dispatch(rec)
			mu.Lock()
			results = append(results, dispatched{rec: rec, ent: ent, rerr: rerr})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "parse cancelled")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "parse cancelled")
	}

	sort.Slice(results, func(i, j int) bool { return results[i].rec.Seq < results[j].rec.Seq })
	for _, r := range results {
		p.collect(doc, r, log)
	}
	return nil
}

// collect is the single writer into doc.
func (p *Parser) collect(doc *Document, r dispatched, log *zap.SugaredLogger) {
	if r.rerr != nil {
		doc.Skipped = append(doc.Skipped, r.rerr)
		p.observer.RecordSkipped(r.rerr.EntityType, r.rerr.Kind)
		log.Warnw("Skipping entity record",
			logger.FieldEntityIndex, r.rerr.Index,
			logger.FieldEntityType, r.rerr.EntityType,
			logger.FieldLine, r.rec.Line,
			logger.FieldErrorKind, string(r.rerr.Kind),
			logger.FieldError, r.rerr.Error(),
			logger.FieldPreview, r.rerr.Preview,
		)
		return
	}
	if _, dup := doc.Entities[r.ent.Index()]; dup {
		log.Debugw("Duplicate entity index, later record replaces earlier",
			logger.FieldEntityIndex, r.ent.Index(),
			logger.FieldLine, r.rec.Line,
		)
	}
	doc.Entities[r.ent.Index()] = r.ent
	p.observer.RecordParsed(r.ent.Type())
}
