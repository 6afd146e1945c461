package importer

import (
	"io"

	"github.com/boardinghub/boardinghub/internal/billing"
)

// Format identifies a supported reading-file format.
type Format string

const (
	// FormatMeters is the semicolon-separated meter reading export.
	FormatMeters Format = "meters"
)

// Importer parses an uploaded file into meter readings.
type Importer interface {
	Parse(r io.Reader) ([]billing.MeterReading, error)
}
