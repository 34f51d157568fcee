package model

import "time"

// TimestampLayout is RFC 3339 in UTC with milliseconds, e.g.
// 2020-11-03T09:12:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is the JSON form of created_at.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}
