package topic

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the maximum length of a topic in bytes, after normalization.
const MaxLength = 255

// Separator splits a topic into segments.
const Separator = "."

var (
	// ErrEmpty is returned for an empty topic.
	ErrEmpty = errors.New("topic is empty")

	// ErrTooLong is returned for a topic longer than MaxLength bytes.
	ErrTooLong = errors.New("topic is too long")

	// ErrInvalidEncoding is returned for a topic that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("topic is not valid utf-8")

	// ErrInvalidChar is returned for a topic containing whitespace or control characters.
	ErrInvalidChar = errors.New("topic contains invalid character")

	// ErrEmptySegment is returned for a topic with a leading, trailing or doubled separator.
	ErrEmptySegment = errors.New("topic contains empty segment")
)

// Topic is a dot-separated channel name, e.g. "orders.created".
// Topics built with New are NFC-normalized and case-folded, so visually equal
// names written with different case or composition map to the same key.
type Topic string

// New normalizes s and validates the result.
func New(s string) (Topic, error) {
	t := Normalize(Topic(s))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// MustNew is like New but panics on an invalid topic.
func MustNew(s string) Topic {
	t, err := New(s)
	if err != nil {
		panic(fmt.Sprintf("topic: %q: %v", s, err))
	}
	return t
}

// Normalize trims surrounding space, applies Unicode NFC composition and case folding.
// Invalid UTF-8 is returned unchanged so Validate can reject it.
func Normalize(t Topic) Topic {
	s := strings.TrimSpace(string(t))
	if !utf8.ValidString(s) {
		return Topic(s)
	}
	// A Caser keeps state between calls and must not be shared.
	return Topic(cases.Fold().String(norm.NFC.String(s)))
}

// Validate reports whether t is a well-formed topic.
func (t Topic) Validate() error {
	s := string(t)
	switch {
	case s == "":
		return ErrEmpty
	case len(s) > MaxLength:
		return fmt.Errorf("%w: %d bytes", ErrTooLong, len(s))
	case !utf8.ValidString(s):
		return ErrInvalidEncoding
	}

	for i, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q at offset %d", ErrInvalidChar, r, i)
		}
	}

	for _, seg := range strings.Split(s, Separator) {
		if seg == "" {
			return ErrEmptySegment
		}
	}
	return nil
}

// Segments splits the topic on Separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Child returns the topic extended by one segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Normalize(Topic(segment))
	}
	return Normalize(Topic(string(t) + Separator + segment))
}

// String implements fmt.Stringer.
func (t Topic) String() string {
	return string(t)
}
