package sat

import "time"

// Observer receives parse events. Implementations must be safe for
// concurrent use when the parser runs more than one worker.
type Observer interface {
	RecordParsed(entityType string)
	RecordSkipped(entityType string, kind ErrorKind)
	SplineRejected(subtype string)
	ParseFinished(elapsed time.Duration, entities int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) RecordParsed(string) {}
func (NopObserver) RecordSkipped(string, ErrorKind) {}
func (NopObserver) SplineRejected(string) {}
func (NopObserver) ParseFinished(time.Duration, int) {}
