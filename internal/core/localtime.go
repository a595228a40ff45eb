package core

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LocalTimeLayout is the wire format of leg and option timestamps: a local
// clock reading with no zone.
const LocalTimeLayout = "2006-01-02T15:04:05"

var localTimeLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LocalTime is a timestamp without a zone. Values decoded from unparseable
// input are zero rather than errors so one bad record does not reject a
// whole snapshot.
type LocalTime struct {
	time.Time
}

func NewLocalTime(year int, month time.Month, day, hour, minute int) LocalTime {
	return LocalTime{time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// AsLocalTime keeps the wall clock of t and drops its zone.
func AsLocalTime(t time.Time) LocalTime {
	if t.IsZero() {
		return LocalTime{}
	}
	return LocalTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func ParseLocalTime(value string) (LocalTime, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return LocalTime{t}, nil
		}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return LocalTime{}, err
	}
	return AsLocalTime(t), nil
}

func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LocalTimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(LocalTimeLayout))), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = LocalTime{}
		return nil
	}
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(raw)
	if err != nil {
		*t = LocalTime{}
		return nil
	}
	*t = parsed
	return nil
}

func (t LocalTime) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *LocalTime) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseLocalTime(value.Value)
	if err != nil {
		*t = LocalTime{}
		return nil
	}
	*t = parsed
	return nil
}
