package core

import (
	"errors"
	"fmt"
	"strings"
)

// DiagnosticKind classifies a problem found while rendering.
type DiagnosticKind int

const (
	// KindLinkRejected: an inline link target failed the allowlist and was
	// left as literal text.
	KindLinkRejected DiagnosticKind = iota
	// KindUnknownType: a block type is not recognized.
	KindUnknownType
	// KindMissingField: a recognized block lacks a required field.
	KindMissingField
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindLinkRejected:
		return "link-rejected"
	case KindUnknownType:
		return "unknown-type"
	case KindMissingField:
		return "missing-field"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic records one recovered problem in a render pass.
type Diagnostic struct {
	Kind   DiagnosticKind
	Block  int // block index, -1 for the header
	Type   string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("block %d (%s): %s: %s", d.Block, d.Type, d.Kind, d.Detail)
}

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports a recognized block without its required fields.
type MissingFieldError struct {
	Block  int
	Type   string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("block %d (%s): %s: %s", e.Block, e.Type, ErrMissingField, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
