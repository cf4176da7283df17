package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Source string

const (
	SourceCanvas     Source = "Canvas"
	SourceGradescope Source = "Gradescope"
	SourcePiazza     Source = "Piazza"
	SourceOther      Source = "Other"
)

var Sources = []Source{SourceCanvas, SourceGradescope, SourcePiazza, SourceOther}

// ParseSource matches a label case-insensitively against the known sources.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	for _, src := range Sources {
		if strings.EqualFold(s, string(src)) {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

func (s Source) Valid() bool {
	for _, src := range Sources {
		if s == src {
			return true
		}
	}
	return false
}

// DueLayout is the datetime-local input format: wall clock, minute precision, no zone.
const DueLayout = "2006-01-02T15:04"

// DueTime is a local wall-clock instant truncated to the minute.
type DueTime struct {
	t time.Time
}

func NewDueTime(t time.Time) DueTime {
	t = t.In(time.Local)
	return DueTime{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)}
}

// DateLayout is a bare date; it reads as local midnight.
const DateLayout = "2006-01-02"

// ParseDue reads the first 16 characters of s as YYYY-MM-DDTHH:mm in local time.
// Anything after the minutes (seconds, fractions, zone suffix) is dropped.
// A bare YYYY-MM-DD is accepted as midnight.
func ParseDue(s string) (DueTime, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DueLayout) {
		s = s[:len(DueLayout)]
	}
	layout := DueLayout
	if len(s) == len(DateLayout) {
		layout = DateLayout
	}
	t, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return DueTime{}, fmt.Errorf("invalid due time %q: %w", s, err)
	}
	return DueTime{t: t}, nil
}

func (d DueTime) Time() time.Time { return d.t }

func (d DueTime) IsZero() bool { return d.t.IsZero() }

func (d DueTime) Compare(o DueTime) int { return d.t.Compare(o.t) }

func (d DueTime) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DueLayout)
}

func (d DueTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DueTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDue(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Assignment struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Course string  `json:"course"`
	Source Source  `json:"source"`
	Due    DueTime `json:"dueISO"`
	Link   string  `json:"link,omitempty"`
}

// SearchText returns the fields free-text search matches against.
func (a Assignment) SearchText() []string {
	return []string{a.Title, a.Course, string(a.Source), a.Link}
}
