package candidate

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

// Candidate is one caller-supplied searchable record. The service never
// persists candidates; they live only for the duration of a request.
type Candidate struct {
	fields map[string]string
}

// New creates a candidate from a field→text mapping.
func New(fields map[string]string) (Candidate, error) {
	if len(fields) == 0 {
		return Candidate{}, fmt.Errorf("%w: candidate must have at least one field", domain.ErrInvalidArgument)
	}
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Candidate{fields: copied}, nil
}

// Reconstruct builds a candidate from trusted data without validation.
func Reconstruct(fields map[string]string) Candidate {
	return Candidate{fields: fields}
}

// Text returns the value of the named field, or "" if absent.
func (c *Candidate) Text(field string) string { return c.fields[field] }

// Fields returns the candidate's field mapping.
func (c *Candidate) Fields() map[string]string { return c.fields }
