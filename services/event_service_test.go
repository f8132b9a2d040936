package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"mingl_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func testEvent() models.Event {
	return models.Event{
		OwnerID:  "owner-1",
		Title:    "Wine Tasting",
		City:     "Lyon",
		StartsAt: "2026-04-03T19:00:00Z",
	}
}

func TestCreateEventSingleOccurrence(t *testing.T) {
	dynamo := &fakeDynamo{}
	service := &EventService{Dynamo: dynamo}

	created, err := service.CreateEvent(context.Background(), testEvent(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 || len(dynamo.puts) != 1 {
		t.Fatalf("expected exactly one row, got %d created, %d puts", len(created), len(dynamo.puts))
	}
	if created[0].EventID == "" {
		t.Fatal("event id must be assigned")
	}
	if created[0].SeriesID != "" {
		t.Fatal("one-off events carry no series id")
	}
}

func TestCreateEventWeeklySeries(t *testing.T) {
	dynamo := &fakeDynamo{}
	service := &EventService{Dynamo: dynamo}

	event := testEvent()
	event.Recurrence = "weekly"
	created, err := service.CreateEvent(context.Background(), event, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 3 || len(dynamo.puts) != 3 {
		t.Fatalf("expected 3 occurrences, got %d created, %d puts", len(created), len(dynamo.puts))
	}

	series := created[0].SeriesID
	if series == "" {
		t.Fatal("weekly occurrences must share a series id")
	}
	seen := map[string]bool{}
	for i, occurrence := range created {
		if occurrence.SeriesID != series {
			t.Fatalf("occurrence %d has series %q, want %q", i, occurrence.SeriesID, series)
		}
		if seen[occurrence.EventID] {
			t.Fatalf("duplicate event id %q", occurrence.EventID)
		}
		seen[occurrence.EventID] = true

		start, err := time.Parse(time.RFC3339, occurrence.StartsAt)
		if err != nil {
			t.Fatalf("occurrence %d has bad start %q: %v", i, occurrence.StartsAt, err)
		}
		want := time.Date(2026, 4, 3+7*i, 19, 0, 0, 0, time.UTC)
		if !start.Equal(want) {
			t.Fatalf("occurrence %d starts at %s, want %s", i, start, want)
		}
	}
}

func TestCreateEventRejectsIncomplete(t *testing.T) {
	service := &EventService{Dynamo: &fakeDynamo{}}

	event := testEvent()
	event.City = ""
	if _, err := service.CreateEvent(context.Background(), event, 1); err == nil {
		t.Fatal("expected error for missing city")
	}

	event = testEvent()
	event.StartsAt = "tonight"
	if _, err := service.CreateEvent(context.Background(), event, 1); err == nil {
		t.Fatal("expected error for unparseable start")
	}
}

func TestListEventsByCityFiltersAndSorts(t *testing.T) {
	rows := []map[string]types.AttributeValue{
		mustMarshal(models.Event{EventID: "e1", City: "Lyon", StartsAt: "2026-04-10T19:00:00Z"}),
		mustMarshal(models.Event{EventID: "e2", City: "Paris", StartsAt: "2026-04-04T19:00:00Z"}),
		mustMarshal(models.Event{EventID: "e3", City: "Lyon", StartsAt: "2026-04-03T19:00:00Z"}),
		mustMarshal(models.Event{EventID: "e4", City: "Lyon", StartsAt: "2026-01-01T19:00:00Z"}),
	}
	dynamo := &fakeDynamo{
		scanFn: func(string) ([]map[string]types.AttributeValue, error) { return rows, nil },
	}
	service := &EventService{Dynamo: dynamo, Now: fixedNow}

	events, err := service.ListEventsByCity(context.Background(), "Lyon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].EventID != "e3" || events[1].EventID != "e1" {
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.EventID
		}
		t.Fatalf("expected [e3 e1], got %v", ids)
	}
}

func TestSetRSVPValidatesStatusAndEvent(t *testing.T) {
	dynamo := &fakeDynamo{
		getItemFn: func(table string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return mustMarshal(models.Event{EventID: "evt-1", City: "Lyon"}), nil
		},
	}
	service := &EventService{Dynamo: dynamo, Now: fixedNow}

	if err := service.SetRSVP(context.Background(), "evt-1", "u1", "maybe"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if len(dynamo.puts) != 0 {
		t.Fatal("invalid rsvp must not be written")
	}

	if err := service.SetRSVP(context.Background(), "evt-1", "u1", models.RSVPGoing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dynamo.puts) != 1 || dynamo.puts[0].table != models.RSVPsTable {
		t.Fatalf("expected one rsvp row, got %+v", dynamo.puts)
	}
	rsvp := dynamo.puts[0].item.(models.RSVP)
	if rsvp.EventID != "evt-1" || rsvp.UserID != "u1" || rsvp.Status != models.RSVPGoing {
		t.Fatalf("unexpected rsvp row %+v", rsvp)
	}
}

func TestSetRSVPUnknownEvent(t *testing.T) {
	service := &EventService{Dynamo: &fakeDynamo{}, Now: fixedNow}

	err := service.SetRSVP(context.Background(), "missing", "u1", models.RSVPGoing)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCancelRSVPDeletesRow(t *testing.T) {
	dynamo := &fakeDynamo{}
	service := &EventService{Dynamo: dynamo}

	if err := service.CancelRSVP(context.Background(), "evt-1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dynamo.deletes) != 1 {
		t.Fatalf("expected one delete, got %d", len(dynamo.deletes))
	}
	key := dynamo.deletes[0]
	if key["eventId"].(*types.AttributeValueMemberS).Value != "evt-1" ||
		key["userId"].(*types.AttributeValueMemberS).Value != "u1" {
		t.Fatalf("unexpected delete key %+v", key)
	}
}

func TestAttendeesAndCounts(t *testing.T) {
	dynamo := &fakeDynamo{
		queryFn: func(table, _ string, _ map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
			return []map[string]types.AttributeValue{
				mustMarshal(models.RSVP{EventID: "evt-1", UserID: "u1", Status: models.RSVPGoing}),
				mustMarshal(models.RSVP{EventID: "evt-1", UserID: "u2", Status: models.RSVPInterested}),
				mustMarshal(models.RSVP{EventID: "evt-1", UserID: "u3", Status: models.RSVPGoing}),
			}, nil
		},
	}
	service := &EventService{Dynamo: dynamo}

	attendees, err := service.Attendees(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attendees) != 3 {
		t.Fatalf("expected 3 attendees, got %v", attendees)
	}

	counts, err := service.Counts(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Going != 2 || counts.Interested != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}
