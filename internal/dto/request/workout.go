package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type CreateWorkoutRequest struct {
	TeamID        int64      `json:"teamId" validate:"gt=0"`
	CoachID       int64      `json:"coachId" validate:"gt=0"`
	Title         string     `json:"title" validate:"required,max=200"`
	ScheduledDate *Timestamp `json:"scheduledDate" validate:"required"`
}

func (r *CreateWorkoutRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// timestampLayouts are tried in order when decoding a Timestamp. Values
// without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp accepts full RFC3339 values as well as bare dates and local
// date-times.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", value)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
