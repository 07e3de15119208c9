package notes

import "time"

// DateLayout is the stored form of Note.Date: ISO-8601, microsecond precision, explicit UTC offset.
// Strings in this layout sort chronologically, which the feed ordering relies on.
const DateLayout = "2006-01-02T15:04:05.000000-07:00"

// Note is a single post on the board. Notes are never edited.
type Note struct {
	ID      string `json:"id" bson:"id"`
	Content string `json:"content" bson:"content"`
	Date    string `json:"date" bson:"date"`
	IP      string `json:"ip" bson:"ip"`
}

// FormatDate renders t in DateLayout after converting it to UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a stored note date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
