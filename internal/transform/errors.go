package transform

import "fmt"

// ValidationError reports a document whose shape or field types failed
// validation. Document is the document's name when one is available,
// otherwise its position in the batch.
type ValidationError struct {
	Document string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document %s: field %q %s", e.Document, e.Field, e.Reason)
}

// UniquenessError reports a duplicate that would violate one of the target
// schema's uniqueness constraints: a repeated pokemon id or name, or the
// same type listed twice by one document.
type UniquenessError struct {
	Document string
	Field    string
	Value    string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("document %s: duplicate %s %q", e.Document, e.Field, e.Value)
}
