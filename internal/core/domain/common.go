package domain

import "time"

// InboundMessage is what the transport collaborator hands to the Dispatcher.
type InboundMessage struct {
	SenderAddress string    `json:"senderAddress"`
	Body          string    `json:"body"`
	ReceivedAt    time.Time `json:"receivedAt"`
}

// StartOfDay truncates t to midnight UTC, the calendar-day bucket used for
// rate caching and report breakdowns.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
