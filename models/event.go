package models

// Event is a venue event users can RSVP to. Recurring series are stored as
// one row per occurrence sharing a SeriesID.
type Event struct {
	EventID     string `dynamodbav:"eventId" json:"eventId"`
	OwnerID     string `dynamodbav:"ownerId" json:"ownerId"`
	SeriesID    string `dynamodbav:"seriesId,omitempty" json:"seriesId,omitempty"`
	Title       string `dynamodbav:"title" json:"title"`
	Description string `dynamodbav:"description,omitempty" json:"description,omitempty"`
	VenueName   string `dynamodbav:"venueName,omitempty" json:"venueName,omitempty"`
	City        string `dynamodbav:"city" json:"city"`
	StartsAt    string `dynamodbav:"startsAt" json:"startsAt"`
	Recurrence  string `dynamodbav:"recurrence,omitempty" json:"recurrence,omitempty"`
}

// RSVP statuses. Cancelling removes the row rather than writing a status.
const (
	RSVPGoing      = "going"
	RSVPInterested = "interested"
)

// RSVP records one user's attendance intent for one event.
type RSVP struct {
	EventID   string `dynamodbav:"eventId"`
	UserID    string `dynamodbav:"userId"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// AttendanceCounts summarizes RSVPs for the owner panel.
type AttendanceCounts struct {
	EventID    string `json:"eventId"`
	Going      int    `json:"going"`
	Interested int    `json:"interested"`
}

const (
	EventsTable = "MinglEvents"
	RSVPsTable  = "MinglRSVPs"
)
