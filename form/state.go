// Package form holds the recognition form's field state. State is a value:
// every update returns a new State that differs from the old one only in the
// field being changed.
package form

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the value format of an HTML date input.
const DateLayout = "2006-01-02"

// Field names one of the text inputs.
type Field string

const (
	RecipientName Field = "recipientName"
	Message       Field = "message"
	Signature     Field = "signature"
	Date          Field = "date"
)

// ErrUnknownField is returned for a field name that is not one of the four
// text inputs.
var ErrUnknownField = errors.New("unknown field")

// Fields returns the text inputs in the order they appear on the card.
func Fields() []Field {
	return []Field{RecipientName, Message, Signature, Date}
}

// ParseField validates s as a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownField, "%q", s)
}

// State is everything the user has entered on one form.
type State struct {
	RecipientName string     `json:"recipientName"`
	Message       string     `json:"message"`
	Signature     string     `json:"signature"`
	Date          string     `json:"date"`
	Checkboxes    Checkboxes `json:"checkboxes"`
}

func (s State) WithRecipientName(v string) State {
	s.RecipientName = v
	return s
}

func (s State) WithMessage(v string) State {
	s.Message = v
	return s
}

func (s State) WithSignature(v string) State {
	s.Signature = v
	return s
}

func (s State) WithDate(v string) State {
	s.Date = v
	return s
}

// WithField dispatches to the setter for f.
func (s State) WithField(f Field, v string) (State, error) {
	switch f {
	case RecipientName:
		return s.WithRecipientName(v), nil
	case Message:
		return s.WithMessage(v), nil
	case Signature:
		return s.WithSignature(v), nil
	case Date:
		return s.WithDate(v), nil
	}
	return s, errors.Wrapf(ErrUnknownField, "%q", f)
}

// Value returns the current value of f.
func (s State) Value(f Field) string {
	switch f {
	case RecipientName:
		return s.RecipientName
	case Message:
		return s.Message
	case Signature:
		return s.Signature
	case Date:
		return s.Date
	}
	return ""
}

// WithCheckbox returns a copy of s with checkbox k set to v.
func (s State) WithCheckbox(k Key, v bool) (State, error) {
	c, err := s.Checkboxes.With(k, v)
	if err != nil {
		return s, err
	}
	s.Checkboxes = c
	return s, nil
}

// Missing lists the required fields that are empty. Like the browser's
// required attribute, only the empty string counts as missing.
func (s State) Missing() []Field {
	var r []Field
	for _, f := range Fields() {
		if s.Value(f) == "" {
			r = append(r, f)
		}
	}
	return r
}

// Validate returns a human-readable reason for every problem with s, or nil.
func (s State) Validate() []string {
	var reasons []string
	for _, f := range s.Missing() {
		reasons = append(reasons, fmt.Sprintf("%s is required", f.Title()))
	}
	if s.Date != "" {
		if _, err := time.Parse(DateLayout, s.Date); err != nil {
			reasons = append(reasons, fmt.Sprintf("%s must be a date like 2024-05-01", Date.Title()))
		}
	}
	return reasons
}

// Label is the caption printed above the input on the card.
func (f Field) Label() string {
	switch f {
	case RecipientName:
		return "CHEERS TO YOU,"
	case Message:
		return "Recognition Message:"
	case Signature:
		return "WITH #CHILISLOVE,"
	case Date:
		return "DATE"
	}
	return string(f)
}

// Title names f in error messages.
func (f Field) Title() string {
	switch f {
	case RecipientName:
		return "Recipient name"
	case Message:
		return "Message"
	case Signature:
		return "Signature"
	case Date:
		return "Date"
	}
	return string(f)
}
