package docx

import "fmt"

// MalformedDocumentError is returned by Load when the input cannot be turned
// into a Document: it is not a DOCX container, a mandatory part is missing, a
// part is not well-formed XML, or an internal reference is dangling.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
	}
	return "malformed document: " + e.Reason
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func malformed(reason string, err error) error {
	return &MalformedDocumentError{Reason: reason, Err: err}
}

// SerializationError is returned by Serialize when the in-memory tree no
// longer satisfies the package invariants. It indicates a bug in a mutator.
type SerializationError struct {
	Part string
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("serializing %s: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("serializing document: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
