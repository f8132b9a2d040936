package services

import (
	"context"
	"errors"
	"testing"

	"mingl_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func profileRows(profiles ...models.Profile) []map[string]types.AttributeValue {
	rows := make([]map[string]types.AttributeValue, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, mustMarshal(p))
	}
	return rows
}

// testViewer is in Lyon, open to everyone aged 18-99.
func testViewer() models.Profile {
	return models.Profile{
		UserID:    "viewer",
		Name:      "Viewer",
		Age:       30,
		Latitude:  45.76,
		Longitude: 4.83,
	}
}

func newCandidateFake(viewer models.Profile, pool []models.Profile, decided []string, superlikers []string) *fakeDynamo {
	return &fakeDynamo{
		getItemFn: func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			if table != models.ProfilesTable {
				return nil, nil
			}
			id := key["userId"].(*types.AttributeValueMemberS).Value
			if id == viewer.UserID {
				return mustMarshal(viewer), nil
			}
			for _, p := range pool {
				if p.UserID == id {
					return mustMarshal(p), nil
				}
			}
			return nil, nil
		},
		scanFn: func(table string) ([]map[string]types.AttributeValue, error) {
			return profileRows(append([]models.Profile{viewer}, pool...)...), nil
		},
		queryFn: func(table, _ string, _ map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
			if table != models.DecisionsTable {
				return nil, nil
			}
			var rows []map[string]types.AttributeValue
			for _, target := range decided {
				rows = append(rows, decisionRow(viewer.UserID, target, models.DecisionPass))
			}
			return rows, nil
		},
		queryIndexFn: func(_, _, _ string, _ map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
			var rows []map[string]types.AttributeValue
			for _, actor := range superlikers {
				rows = append(rows, decisionRow(actor, "viewer", models.DecisionSuperlike))
			}
			return rows, nil
		},
	}
}

func nearbyProfile(id, name string, age int) models.Profile {
	return models.Profile{
		UserID:    id,
		Name:      name,
		Age:       age,
		Latitude:  45.75,
		Longitude: 4.85,
		Photos:    []models.Photo{{PhotoID: id + "-p0", URL: "https://photos/" + id}},
	}
}

func TestFetchCandidatePageExcludesSelfAndDecided(t *testing.T) {
	pool := []models.Profile{
		nearbyProfile("u1", "Ana", 28),
		nearbyProfile("u2", "Bo", 31),
		nearbyProfile("u3", "Cy", 27),
	}
	dynamo := newCandidateFake(testViewer(), pool, []string{"u2"}, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := cardIDs(page.Candidates)
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u3" {
		t.Fatalf("expected [u1 u3], got %v", ids)
	}
}

func TestFetchCandidatePageBoostedFirstThenName(t *testing.T) {
	pool := []models.Profile{
		nearbyProfile("u1", "Ana", 28),
		nearbyProfile("u2", "Bo", 31),
		nearbyProfile("u3", "Zed", 27),
	}
	dynamo := newCandidateFake(testViewer(), pool, nil, []string{"u3"})
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := cardIDs(page.Candidates)
	if len(ids) != 3 || ids[0] != "u3" {
		t.Fatalf("superliker must rank first, got %v", ids)
	}
	if !page.Candidates[0].BoostedMe {
		t.Fatal("boosted flag must be set on the card")
	}
	if ids[1] != "u1" || ids[2] != "u2" {
		t.Fatalf("rest must be alphabetical, got %v", ids)
	}
}

func TestFetchCandidatePagePagination(t *testing.T) {
	pool := []models.Profile{
		nearbyProfile("u1", "Ana", 28),
		nearbyProfile("u2", "Bo", 31),
		nearbyProfile("u3", "Cy", 27),
	}
	dynamo := newCandidateFake(testViewer(), pool, nil, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Candidates) != 2 || !page.HasMore {
		t.Fatalf("expected first page of 2 with more, got %d hasMore=%v", len(page.Candidates), page.HasMore)
	}

	page, err = service.FetchCandidatePage(context.Background(), "viewer", "", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Candidates) != 1 || page.HasMore {
		t.Fatalf("expected final page of 1, got %d hasMore=%v", len(page.Candidates), page.HasMore)
	}
}

func TestFetchCandidatePageLocationRequired(t *testing.T) {
	viewer := testViewer()
	viewer.Latitude, viewer.Longitude = 0, 0
	dynamo := newCandidateFake(viewer, nil, nil, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	_, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("expected ErrLocationRequired, got %v", err)
	}
}

func TestFetchCandidatePageDistanceCutoff(t *testing.T) {
	viewer := testViewer()
	viewer.MaxDistanceKm = 50

	far := nearbyProfile("u2", "Bo", 31)
	far.Latitude, far.Longitude = 48.85, 2.35 // Paris, ~400 km away
	pool := []models.Profile{nearbyProfile("u1", "Ana", 28), far}

	dynamo := newCandidateFake(viewer, pool, nil, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := cardIDs(page.Candidates)
	if len(ids) != 1 || ids[0] != "u1" {
		t.Fatalf("expected only the nearby candidate, got %v", ids)
	}
	if page.Candidates[0].DistanceKm <= 0 || page.Candidates[0].DistanceKm > 5 {
		t.Fatalf("expected a small positive distance, got %f", page.Candidates[0].DistanceKm)
	}
}

func TestFetchCandidatePageMutualOrientation(t *testing.T) {
	viewer := testViewer()
	viewer.Gender = "woman"
	viewer.LookingFor = "man"

	match := nearbyProfile("u1", "Ana", 28)
	match.Gender = "man"
	match.LookingFor = "woman"

	wrongGender := nearbyProfile("u2", "Bo", 31)
	wrongGender.Gender = "woman"
	wrongGender.LookingFor = "man"

	notInterestedBack := nearbyProfile("u3", "Cy", 27)
	notInterestedBack.Gender = "man"
	notInterestedBack.LookingFor = "man"

	dynamo := newCandidateFake(viewer, []models.Profile{match, wrongGender, notInterestedBack}, nil, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := cardIDs(page.Candidates)
	if len(ids) != 1 || ids[0] != "u1" {
		t.Fatalf("interest must be mutual, got %v", ids)
	}
}

func TestFetchCandidatePageAgeWindowIsMutual(t *testing.T) {
	viewer := testViewer()
	viewer.AgeMin, viewer.AgeMax = 25, 35

	tooYoung := nearbyProfile("u1", "Ana", 22)
	viewerTooOld := nearbyProfile("u2", "Bo", 30)
	viewerTooOld.AgeMin, viewerTooOld.AgeMax = 18, 25 // viewer is 30
	fits := nearbyProfile("u3", "Cy", 29)

	dynamo := newCandidateFake(viewer, []models.Profile{tooYoung, viewerTooOld, fits}, nil, nil)
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := cardIDs(page.Candidates)
	if len(ids) != 1 || ids[0] != "u3" {
		t.Fatalf("expected only the mutual fit, got %v", ids)
	}
}

func TestFetchCandidatePageEventScopedPool(t *testing.T) {
	pool := []models.Profile{
		nearbyProfile("u1", "Ana", 28),
		nearbyProfile("u2", "Bo", 31),
	}
	dynamo := newCandidateFake(testViewer(), pool, nil, nil)
	// RSVP query returns only u2 as an attendee.
	baseQuery := dynamo.queryFn
	dynamo.queryFn = func(table, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
		if table == models.RSVPsTable {
			return []map[string]types.AttributeValue{
				mustMarshal(models.RSVP{EventID: "evt-1", UserID: "u2", Status: models.RSVPGoing}),
			}, nil
		}
		return baseQuery(table, keyCondition, values)
	}
	service := &CandidateService{Dynamo: dynamo, Events: &EventService{Dynamo: dynamo}}

	page, err := service.FetchCandidatePage(context.Background(), "viewer", "evt-1", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := cardIDs(page.Candidates)
	if len(ids) != 1 || ids[0] != "u2" {
		t.Fatalf("event pool must be attendees only, got %v", ids)
	}
}

func cardIDs(cards []models.CandidateCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.UserID
	}
	return ids
}
