package sat

import (
	"io"
	"strconv"
	"strings"

	"github.com/teranos/satgraph/errors"
)

// EndMarker terminates the entity section of a SAT file.
const EndMarker = "End-of-ACIS-data"

// Record is one logical entity record assembled from one or more physical lines.
type Record struct {
	Text string
	Line int // physical line the record starts on
	Seq  int // position in the record stream, from 0
}

// RecordScanner splits the body of a SAT file into logical entity records.
// It makes a single forward pass and cannot be restarted.
//
//	sc := NewRecordScanner(r, 0)
//	for sc.Scan() {
//		rec := sc.Record()
//	}
//	if err := sc.Err(); err != nil { ... }
type RecordScanner struct {
	lr   *lineReader
	rec  Record
	seq  int
	done bool
}

// NewRecordScanner scans r, which must be positioned after the header.
// maxLineBytes <= 0 selects DefaultMaxLineBytes.
func NewRecordScanner(r io.Reader, maxLineBytes int) *RecordScanner {
	return newRecordScanner(newLineReader(r, maxLineBytes))
}

func newRecordScanner(lr *lineReader) *RecordScanner {
	return &RecordScanner{lr: lr}
}

// Scan advances to the next record. It returns false at EndMarker, at end of
// input, or on a read error.
func (s *RecordScanner) Scan() bool {
	if s.done {
		return false
	}
	for {
		line, ok := s.lr.next()
		if !ok {
			s.done = true
			return false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == EndMarker {
			s.done = true
			return false
		}
		if !isRecordStart(trimmed) {
			continue
		}

		start := s.lr.line
		var text string
		switch {
		case opensBlock(line):
			text = s.readBlock(line)
		case !strings.HasSuffix(trimmed, "#"):
			text = s.readContinuation(trimmed)
		default:
			text = line
		}
		s.rec = Record{Text: text, Line: start, Seq: s.seq}
		s.seq++
		return true
	}
}

// Record returns the record found by the last call to Scan.
func (s *RecordScanner) Record() Record {
	return s.rec
}

// Err returns the first read error, if any. A line longer than the scanner
// buffer is reported here.
func (s *RecordScanner) Err() error {
	if err := s.lr.err(); err != nil {
		return errors.Wrapf(err, "reading line %d", s.lr.line+1)
	}
	return nil
}

// isRecordStart accepts "-<int> <type> ..." and rejects negative numeric data
// rows such as "-2.5" or "-1 0.5 3".
func isRecordStart(line string) bool {
	if !strings.HasPrefix(line, "-") {
		return false
	}
	fields := splitFieldsN(line[1:], 3)
	if len(fields) < 2 {
		return false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return false
	}
	return !isFloat(fields[1])
}

func opensBlock(line string) bool {
	return strings.Contains(line, "{") && !strings.Contains(line, "}")
}

// readBlock appends raw lines, newline-joined, through the first line that
// contains "}". End of input closes the block.
func (s *RecordScanner) readBlock(first string) string {
	var b strings.Builder
	b.WriteString(first)
	for {
		line, ok := s.lr.next()
		if !ok {
			return b.String()
		}
		b.WriteByte('\n')
		b.WriteString(line)
		if strings.Contains(line, "}") {
			return b.String()
		}
	}
}

// readContinuation appends trimmed lines, space-joined, until the text ends
// with "#" or the next line starts a record, a marker, or is blank. That
// lookahead line is pushed back. A continuation line that opens a brace
// block switches to block reading.
func (s *RecordScanner) readContinuation(first string) string {
	text := first
	for {
		line, ok := s.lr.next()
		if !ok {
			return text
		}
		t := strings.TrimSpace(line)
		if t == "" || t == EndMarker || strings.HasPrefix(t, "-") || strings.HasPrefix(t, "#") {
			s.lr.unread(line)
			return text
		}
		if opensBlock(t) {
			return s.readBlock(text + " " + t)
		}
		text += " " + t
		if strings.HasSuffix(text, "#") {
			return text
		}
	}
}
