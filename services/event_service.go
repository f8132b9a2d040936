package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"mingl_server/models"
	"mingl_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// EventService manages venue events, recurring series, and RSVPs. The
// attendee list it exposes is the candidate pool for event-scoped swiping.
type EventService struct {
	Dynamo DynamoAPI

	Now func() time.Time
}

func (es *EventService) now() time.Time {
	if es.Now != nil {
		return es.Now()
	}
	return time.Now()
}

// CreateEvent stores a new event. When the event recurs weekly and
// occurrences > 1, one row per occurrence is written, all sharing a
// SeriesID, with start times seven days apart.
func (es *EventService) CreateEvent(ctx context.Context, event models.Event, occurrences int) ([]models.Event, error) {
	if event.Title == "" || event.City == "" || event.OwnerID == "" {
		return nil, fmt.Errorf("event requires title, city and ownerId")
	}
	start, err := time.Parse(time.RFC3339, event.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid startsAt %q: %w", event.StartsAt, err)
	}

	count := 1
	if event.Recurrence == "weekly" && occurrences > 1 {
		count = occurrences
		event.SeriesID = uuid.NewString()
	}

	var created []models.Event
	for i := 0; i < count; i++ {
		occurrence := event
		occurrence.EventID = uuid.NewString()
		occurrence.StartsAt = start.AddDate(0, 0, 7*i).Format(time.RFC3339)
		if err := es.Dynamo.PutItem(ctx, models.EventsTable, occurrence); err != nil {
			return created, fmt.Errorf("failed to save event occurrence %d: %w", i, err)
		}
		created = append(created, occurrence)
	}

	log.Printf("✅ Created %d event(s) for owner %s in %s", len(created), event.OwnerID, event.City)
	return created, nil
}

// GetEvent fetches one event by id.
func (es *EventService) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	key := map[string]types.AttributeValue{
		"eventId": &types.AttributeValueMemberS{Value: eventID},
	}
	item, err := es.Dynamo.GetItem(ctx, models.EventsTable, key)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	if item == nil {
		return models.Event{}, ErrEventNotFound
	}
	var event models.Event
	if err := attributevalue.UnmarshalMap(item, &event); err != nil {
		return models.Event{}, fmt.Errorf("failed to unmarshal event %s: %w", eventID, err)
	}
	return event, nil
}

// ListEventsByCity returns upcoming events in a city, soonest first.
func (es *EventService) ListEventsByCity(ctx context.Context, city string) ([]models.Event, error) {
	items, err := es.Dynamo.ScanItems(ctx, models.EventsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	var all []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	cutoff := es.now().UTC()
	var events []models.Event
	for _, event := range all {
		if event.City != city {
			continue
		}
		if start, err := time.Parse(time.RFC3339, event.StartsAt); err == nil && start.Before(cutoff) {
			continue
		}
		events = append(events, event)
	}
	sortEventsByStart(events)
	return events, nil
}

// SetRSVP records a user's attendance intent for an event.
func (es *EventService) SetRSVP(ctx context.Context, eventID, userID, status string) error {
	if status != models.RSVPGoing && status != models.RSVPInterested {
		return fmt.Errorf("invalid rsvp status %q", status)
	}
	if _, err := es.GetEvent(ctx, eventID); err != nil {
		return err
	}
	rsvp := models.RSVP{
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		CreatedAt: es.now().UTC().Format(time.RFC3339),
	}
	if err := es.Dynamo.PutItem(ctx, models.RSVPsTable, rsvp); err != nil {
		return fmt.Errorf("failed to save rsvp: %w", err)
	}
	return nil
}

// CancelRSVP removes a user's RSVP for an event.
func (es *EventService) CancelRSVP(ctx context.Context, eventID, userID string) error {
	key := map[string]types.AttributeValue{
		"eventId": &types.AttributeValueMemberS{Value: eventID},
		"userId":  &types.AttributeValueMemberS{Value: userID},
	}
	if err := es.Dynamo.DeleteItem(ctx, models.RSVPsTable, key); err != nil {
		return fmt.Errorf("failed to cancel rsvp: %w", err)
	}
	return nil
}

// Attendees returns the user ids with an active RSVP for the event.
func (es *EventService) Attendees(ctx context.Context, eventID string) ([]string, error) {
	items, err := es.queryRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var attendees []string
	for _, item := range items {
		if userID := utils.ExtractString(item, "userId"); userID != "" {
			attendees = append(attendees, userID)
		}
	}
	return attendees, nil
}

// Counts summarizes RSVPs for the owner panel.
func (es *EventService) Counts(ctx context.Context, eventID string) (models.AttendanceCounts, error) {
	items, err := es.queryRSVPs(ctx, eventID)
	if err != nil {
		return models.AttendanceCounts{}, err
	}
	counts := models.AttendanceCounts{EventID: eventID}
	for _, item := range items {
		switch utils.ExtractString(item, "status") {
		case models.RSVPGoing:
			counts.Going++
		case models.RSVPInterested:
			counts.Interested++
		}
	}
	return counts, nil
}

func (es *EventService) queryRSVPs(ctx context.Context, eventID string) ([]map[string]types.AttributeValue, error) {
	keyCondition := "eventId = :event"
	values := map[string]types.AttributeValue{
		":event": &types.AttributeValueMemberS{Value: eventID},
	}
	items, err := es.Dynamo.QueryItems(ctx, models.RSVPsTable, keyCondition, values, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps for event %s: %w", eventID, err)
	}
	return items, nil
}

func sortEventsByStart(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt < events[j].StartsAt
	})
}
