package ports

import "github.com/emiliopalmerini/researchlog/internal/domain"

// RecordCodec converts a record to and from a single line of text.
// Encoded lines never contain a line break.
type RecordCodec interface {
	// Name is the format name used in configuration.
	Name() string
	Encode(r domain.Record) ([]byte, error)
	Decode(line []byte) (domain.Record, error)
}
