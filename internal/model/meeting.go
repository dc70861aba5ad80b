package model

// Meeting is a scheduled review session. Date is a calendar date
// (YYYY-MM-DD) and Time a local time of day (HH:MM); splitting them
// keeps the upcoming/past partition a plain string comparison.
type Meeting struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	Duration     int             `json:"duration"`
	Notes        string          `json:"notes"`
	Participants []string        `json:"participants"`
	CreatedAt    int64           `json:"createdAt"`
	Minutes      *MeetingMinutes `json:"minutes"`
}

// MeetingMinutes is a text artifact attached to a past meeting.
type MeetingMinutes struct {
	Text       string `json:"text"`
	FileName   string `json:"fileName"`
	UploadedAt int64  `json:"uploadedAt"`
}

// Report is a shared file. Content holds the entire payload encoded for
// storage (data-URL style), so a record is self-contained.
type Report struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	UploadedBy string `json:"uploadedBy"`
	UploadedAt int64  `json:"uploadedAt"`
}
