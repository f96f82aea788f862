package entity

import "time"

type Session struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// UploadHistoryEntry records one accepted upload. Entries are never mutated.
type UploadHistoryEntry struct {
	FileName    string
	Date        string
	Time        string
	ProcessTime string
}

type ChatMessage struct {
	ID     int64
	Text   string
	Sender Sender
	SentAt time.Time
}

// ChatEvent asks the bot to answer a user message.
type ChatEvent struct {
	EventID   string
	SessionID string
	MessageID int64
	Text      string
}

// Contribution is a species sighting submitted through the user data form.
type Contribution struct {
	ID          int64
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	ImageName   string
	SubmittedAt time.Time
}
