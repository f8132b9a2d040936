package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"mingl_server/models"
	"mingl_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CandidateService builds ranked candidate pages for a viewer. Eligibility
// (age window, mutual orientation interest, distance cutoff, decided
// exclusion) is enforced here so clients never have to re-filter.
type CandidateService struct {
	Dynamo DynamoAPI
	Events *EventService
}

// FetchCandidatePage returns one page of candidates for the viewer.
// eventID == "" selects the classic pool; otherwise the pool is restricted
// to the event's attendees.
func (cs *CandidateService) FetchCandidatePage(ctx context.Context, userID, eventID string, offset, limit int) (models.CandidatePage, error) {
	viewer, err := cs.getProfile(ctx, userID)
	if err != nil {
		return models.CandidatePage{}, err
	}
	if eventID == "" && !viewer.HasLocation() {
		return models.CandidatePage{}, ErrLocationRequired
	}

	decided, err := cs.decidedTargets(ctx, userID)
	if err != nil {
		return models.CandidatePage{}, err
	}
	boosted, err := cs.boostedBy(ctx, userID)
	if err != nil {
		// Boost ordering is a ranking nicety, not an eligibility rule.
		log.Printf("⚠️ Boost lookup failed for %s: %v", userID, err)
		boosted = map[string]bool{}
	}

	pool, err := cs.candidatePool(ctx, viewer, eventID)
	if err != nil {
		return models.CandidatePage{}, err
	}

	var cards []models.CandidateCard
	for _, cand := range pool {
		if cand.UserID == userID || decided[cand.UserID] || cand.HideProfile {
			continue
		}
		if !eligible(viewer, cand) {
			continue
		}
		distance := -1.0
		if viewer.HasLocation() && cand.HasLocation() {
			distance = utils.CalculateDistance(viewer.Latitude, viewer.Longitude, cand.Latitude, cand.Longitude)
			if viewer.MaxDistanceKm > 0 && distance > viewer.MaxDistanceKm {
				continue
			}
		}
		card, err := models.NewCandidateCard(cand, distance, boosted[cand.UserID])
		if err != nil {
			log.Printf("⚠️ Skipping malformed candidate row: %v", err)
			continue
		}
		cards = append(cards, card)
	}

	// Boosted-me first, then alphabetical tie-break.
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].BoostedMe != cards[j].BoostedMe {
			return cards[i].BoostedMe
		}
		return cards[i].Name < cards[j].Name
	})

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(cards) {
		return models.CandidatePage{Candidates: []models.CandidateCard{}, HasMore: false}, nil
	}
	end := offset + limit
	if end > len(cards) {
		end = len(cards)
	}
	return models.CandidatePage{
		Candidates: cards[offset:end],
		HasMore:    end < len(cards),
	}, nil
}

func (cs *CandidateService) getProfile(ctx context.Context, userID string) (models.Profile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := cs.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}
	if item == nil {
		return models.Profile{}, ErrProfileNotFound
	}
	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	return profile, nil
}

// decidedTargets collects every target the viewer has already decided on,
// across both contexts. A decision made in one context must not let the
// same candidate reappear in the other.
func (cs *CandidateService) decidedTargets(ctx context.Context, userID string) (map[string]bool, error) {
	keyCondition := "actorId = :actor"
	values := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := cs.Dynamo.QueryItems(ctx, models.DecisionsTable, keyCondition, values, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions for %s: %w", userID, err)
	}

	decided := make(map[string]bool, len(items))
	for _, item := range items {
		if target := utils.ExtractString(item, "targetId"); target != "" {
			decided[target] = true
		}
	}
	return decided, nil
}

// boostedBy returns the users whose superlike targets the viewer.
func (cs *CandidateService) boostedBy(ctx context.Context, userID string) (map[string]bool, error) {
	keyCondition := "targetId = :target"
	values := map[string]types.AttributeValue{
		":target": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := cs.Dynamo.QueryItemsWithIndex(ctx, models.DecisionsTable, models.DecisionsByTargetIndex, keyCondition, values, 500)
	if err != nil {
		return nil, err
	}

	boosted := make(map[string]bool)
	for _, item := range items {
		if utils.ExtractString(item, "kind") == string(models.DecisionSuperlike) {
			if actor := utils.ExtractString(item, "actorId"); actor != "" {
				boosted[actor] = true
			}
		}
	}
	return boosted, nil
}

func (cs *CandidateService) candidatePool(ctx context.Context, viewer models.Profile, eventID string) ([]models.Profile, error) {
	if eventID == "" {
		items, err := cs.Dynamo.ScanItems(ctx, models.ProfilesTable)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profiles: %w", err)
		}
		var profiles []models.Profile
		if err := attributevalue.UnmarshalListOfMaps(items, &profiles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
		}
		return profiles, nil
	}

	attendees, err := cs.Events.Attendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var profiles []models.Profile
	for _, attendeeID := range attendees {
		if attendeeID == viewer.UserID {
			continue
		}
		profile, err := cs.getProfile(ctx, attendeeID)
		if err != nil {
			// An attendee without a profile row is stale RSVP data.
			log.Printf("⚠️ Attendee %s of event %s has no profile, skipping", attendeeID, eventID)
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// eligible enforces the mutual age-window and orientation-interest rules.
func eligible(viewer, cand models.Profile) bool {
	vLo, vHi := viewer.AgeWindow()
	cLo, cHi := cand.AgeWindow()
	if cand.Age != 0 && (cand.Age < vLo || cand.Age > vHi) {
		return false
	}
	if viewer.Age != 0 && (viewer.Age < cLo || viewer.Age > cHi) {
		return false
	}
	return interestedIn(viewer, cand) && interestedIn(cand, viewer)
}

func interestedIn(p, other models.Profile) bool {
	switch p.LookingFor {
	case "", "everyone":
		return true
	default:
		return other.Gender == p.LookingFor
	}
}
