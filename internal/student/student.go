package student

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Student is one stored record.
type Student struct {
	ID    string
	Name  string
	Age   int
	Major string
}

// New builds a Student from raw text fields, trimming whitespace and
// normalizing names to NFC. The age must parse as a decimal integer; no
// bounds are enforced.
func New(id, name, age, major string) (Student, error) {
	n, err := ParseAge(age)
	if err != nil {
		return Student{}, err
	}
	return Student{
		ID:    CleanText(id),
		Name:  CleanText(name),
		Age:   n,
		Major: CleanText(major),
	}, nil
}

// ParseAge parses a decimal integer age. Surrounding whitespace is ignored.
func ParseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAge, s)
	}
	return n, nil
}

// CleanText trims surrounding whitespace and normalizes to Unicode NFC so
// that text typed with combining marks compares equal to precomposed text.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Fields returns the record as text in column order: id, name, age, major.
func (s Student) Fields() []string {
	return []string{s.ID, s.Name, strconv.Itoa(s.Age), s.Major}
}

// Patch describes an update. Empty Name or Major and a nil Age keep the
// current value.
type Patch struct {
	Name  string
	Age   *int
	Major string
}

// apply returns s with the non-blank patch fields applied.
func (p Patch) apply(s Student) Student {
	if name := CleanText(p.Name); name != "" {
		s.Name = name
	}
	if p.Age != nil {
		s.Age = *p.Age
	}
	if major := CleanText(p.Major); major != "" {
		s.Major = major
	}
	return s
}
