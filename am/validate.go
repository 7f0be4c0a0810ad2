package am

import "github.com/teranos/satgraph/errors"

// MinPreviewLength keeps diagnostics long enough to show the record head
const MinPreviewLength = 16

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Parser workers: 0 = parser default, negative = invalid
	if c.Parser.Workers < 0 {
		return errors.Newf("parser.workers must be >= 0, got %d", c.Parser.Workers)
	}

	// Preview length: 0 = parser default
	if c.Parser.PreviewLength < 0 {
		return errors.Newf("parser.preview_length must be >= 0, got %d", c.Parser.PreviewLength)
	}
	if c.Parser.PreviewLength > 0 && c.Parser.PreviewLength < MinPreviewLength {
		return errors.Newf("parser.preview_length must be at least %d, got %d", MinPreviewLength, c.Parser.PreviewLength)
	}

	if c.Parser.MaxLineBytes < 0 {
		return errors.Newf("parser.max_line_bytes must be >= 0, got %d", c.Parser.MaxLineBytes)
	}

	if c.Log.Theme != "" && c.Log.Theme != "everforest" && c.Log.Theme != "gruvbox" {
		return errors.Newf("log.theme must be everforest or gruvbox, got %q", c.Log.Theme)
	}

	// Debounce: 0 = reparse on every event
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
