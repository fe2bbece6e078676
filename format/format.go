package format

import (
	"errors"
	"fmt"
	"strings"
)

// Format is one of the text notations documents are read and written in.
type Format int

const (
	RSONFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

// traits describes a format: how it is named on the command line and
// on disk, and which of the RSON extensions it can carry.
type traits struct {
	name     string
	abbrev   string
	suffixes []string
	// shared values as (name)/$name or &name/*name
	refs bool
	// "//" and "/* */" comments
	comments bool
}

var formats = [...]traits{
	RSONFormat: {name: "rson", abbrev: "r", suffixes: []string{".rson"}, refs: true, comments: true},
	YAMLFormat: {name: "yaml", abbrev: "y", suffixes: []string{".yaml", ".yml"}, refs: true},
	JSONFormat: {name: "json", abbrev: "j", suffixes: []string{".json"}},
}

func (f Format) traits() (traits, bool) {
	if f < 0 || int(f) >= len(formats) {
		return traits{}, false
	}
	return formats[f], true
}

// ParseFormat accepts a format name or its one letter abbreviation, in
// any case.
func ParseFormat(v string) (Format, error) {
	lv := strings.ToLower(v)
	for i, t := range formats {
		if lv == t.name || lv == t.abbrev {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	t, ok := f.traits()
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(t.name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// HasReferences reports whether f can express a value reached from
// more than one place, and so cycles.
func (f Format) HasReferences() bool {
	t, _ := f.traits()
	return t.refs
}

// HasComments reports whether f allows comments.
func (f Format) HasComments() bool {
	t, _ := f.traits()
	return t.comments
}

// Suffix returns the preferred file extension, dot included.
func (f Format) Suffix() string {
	t, ok := f.traits()
	if !ok {
		return ""
	}
	return t.suffixes[0]
}

// FromSuffix returns the format of a file extension such as ".json".
func FromSuffix(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	for i, t := range formats {
		for _, s := range t.suffixes {
			if s == ext {
				return Format(i), true
			}
		}
	}
	return 0, false
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	res := make([]Format, len(formats))
	for i := range formats {
		res[i] = Format(i)
	}
	return res
}
