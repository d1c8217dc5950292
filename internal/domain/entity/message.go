package entity

import "time"

// Message yordamchiga berilgan savol va javob
type Message struct {
	ID        string
	ChatID    int64
	Question  string
	Answer    string
	Timestamp time.Time
}
