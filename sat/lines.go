package sat

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLineBytes bounds a single physical line. Spline blocks from some
// exporters put thousands of control points on one tab-separated line.
const DefaultMaxLineBytes = 16 * 1024 * 1024

// lineReader yields physical lines with a one-line push-back buffer.
// Invalid UTF-8 is replaced with U+FFFD.
type lineReader struct {
	sc *bufio.Scanner

	line int // number of the most recently returned line

	pushed     bool
	pushedText string
}

func newLineReader(r io.Reader, maxLineBytes int) *lineReader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	initial := 64 * 1024
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initial), maxLineBytes)
	return &lineReader{sc: sc}
}

// next returns the next line without its terminator. ok is false at end of
// input or on a read error; check err.
func (lr *lineReader) next() (string, bool) {
	if lr.pushed {
		lr.pushed = false
		lr.line++
		return lr.pushedText, true
	}
	if !lr.sc.Scan() {
		return "", false
	}
	lr.line++
	text := strings.TrimSuffix(lr.sc.Text(), "\r")
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	return text, true
}

// unread pushes the line most recently returned by next back. Only one line
// can be pending.
func (lr *lineReader) unread(text string) {
	lr.pushed = true
	lr.pushedText = text
	lr.line--
}

func (lr *lineReader) err() error {
	return lr.sc.Err()
}
