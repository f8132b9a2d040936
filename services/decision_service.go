package services

import (
	"context"
	"errors"
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

// Notifier fans realtime events out to connected clients. The socket
// package provides the production implementation.
type Notifier interface {
	ProfileChanged(userID string)
	MatchCreated(userA, userB, matchID string)
}

// DecisionService records swipe decisions, enforces the daily superlike
// quota, and runs the mutual-match consistency check.
type DecisionService struct {
	Dynamo       DynamoAPI
	Notify       Notifier
	SuperlikeCap int

	// Now is swappable for tests; zero value falls back to time.Now.
	Now func() time.Time
}

func (s *DecisionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// targetKey folds the event context into the decision sort key so the same
// pair can hold one classic and one per-event decision row.
func targetKey(eventID, targetID string) string {
	if eventID == "" {
		return targetID
	}
	return eventID + "#" + targetID
}

// SubmitDecision upserts a decision row for (actor, target, context).
// Re-submitting overwrites in place, so retries are safe. Superlikes consume
// one unit of the actor's daily quota first; ErrQuotaExceeded is returned
// without writing the decision when the quota is exhausted.
func (s *DecisionService) SubmitDecision(ctx context.Context, actorID, targetID string, kind models.DecisionKind, eventID string) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid decision kind %q", kind)
	}
	if actorID == "" || targetID == "" || actorID == targetID {
		return errors.New("actorId and targetId must be distinct and non-empty")
	}

	if kind == models.DecisionSuperlike {
		if err := s.consumeSuperlike(ctx, actorID); err != nil {
			return err
		}
	}

	decision := models.Decision{
		ActorID:   actorID,
		TargetKey: targetKey(eventID, targetID),
		TargetID:  targetID,
		EventID:   eventID,
		Kind:      kind,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.DecisionsTable, decision); err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}

	log.Printf("✅ Decision saved: %s -> %s (%s, event=%q)", actorID, targetID, kind, eventID)
	return nil
}

// RemainingSuperlikes returns the actor's remaining quota for the current
// UTC day. A missing row means the full daily cap.
func (s *DecisionService) RemainingSuperlikes(ctx context.Context, userID string) (int, error) {
	item, err := s.Dynamo.GetItem(ctx, models.QuotasTable, s.quotaKey(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quota for %s: %w", userID, err)
	}
	if item == nil {
		return s.SuperlikeCap, nil
	}
	return utils.ExtractInt(item, "remaining"), nil
}

func (s *DecisionService) quotaKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"day":    &types.AttributeValueMemberS{Value: s.now().UTC().Format("2006-01-02")},
	}
}

// consumeSuperlike decrements today's quota with a conditional update, so
// two racing superlikes cannot both spend the last unit.
func (s *DecisionService) consumeSuperlike(ctx context.Context, userID string) error {
	key := s.quotaKey(userID)

	item, err := s.Dynamo.GetItem(ctx, models.QuotasTable, key)
	if err != nil {
		return fmt.Errorf("failed to fetch quota for %s: %w", userID, err)
	}
	if item == nil {
		quota := models.SuperlikeQuota{
			UserID:    userID,
			Day:       s.now().UTC().Format("2006-01-02"),
			Remaining: s.SuperlikeCap,
		}
		if err := s.Dynamo.PutItem(ctx, models.QuotasTable, quota); err != nil {
			return fmt.Errorf("failed to seed quota for %s: %w", userID, err)
		}
	}

	values := map[string]types.AttributeValue{
		":one":  &types.AttributeValueMemberN{Value: "1"},
		":zero": &types.AttributeValueMemberN{Value: "0"},
	}
	_, err = s.Dynamo.UpdateItem(ctx, models.QuotasTable,
		"SET remaining = remaining - :one", "remaining > :zero", key, values)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			log.Printf("⚠️ Superlike quota exhausted for %s", userID)
			return ErrQuotaExceeded
		}
		return fmt.Errorf("failed to consume superlike for %s: %w", userID, err)
	}
	return nil
}

// CheckMatchConsistency reports whether actor and target have mutually
// qualifying decisions (in any context). On first detection it creates the
// match row and notifies both users; later calls return the existing match.
func (s *DecisionService) CheckMatchConsistency(ctx context.Context, actorID, targetID string) (bool, string, error) {
	forward, err := s.hasQualifyingDecision(ctx, actorID, targetID)
	if err != nil {
		return false, "", err
	}
	reverse, err := s.hasQualifyingDecision(ctx, targetID, actorID)
	if err != nil {
		return false, "", err
	}
	if !forward || !reverse {
		return false, "", nil
	}

	pairKey := pairKey(actorID, targetID)
	matchKeyAttr := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
	existing, err := s.Dynamo.GetItem(ctx, models.MatchesTable, matchKeyAttr)
	if err != nil {
		return false, "", fmt.Errorf("failed to look up match: %w", err)
	}
	if existing != nil {
		return true, utils.ExtractString(existing, "matchId"), nil
	}

	match := models.Match{
		PairKey:   pairKey,
		MatchID:   uuid.NewString(),
		UserA:     actorID,
		UserB:     targetID,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return false, "", fmt.Errorf("failed to create match: %w", err)
	}

	log.Printf("🎉 Match created: %s ❤️ %s (%s)", actorID, targetID, match.MatchID)
	if s.Notify != nil {
		s.Notify.MatchCreated(actorID, targetID, match.MatchID)
	}
	return true, match.MatchID, nil
}

// hasQualifyingDecision checks whether actor has a like/superlike recorded
// for target in any context.
func (s *DecisionService) hasQualifyingDecision(ctx context.Context, actorID, targetID string) (bool, error) {
	keyCondition := "actorId = :actor"
	values := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: actorID},
	}
	items, err := s.Dynamo.QueryItems(ctx, models.DecisionsTable, keyCondition, values, 1000)
	if err != nil {
		return false, fmt.Errorf("failed to query decisions for %s: %w", actorID, err)
	}

	for _, item := range items {
		var decision models.Decision
		if err := attributevalue.UnmarshalMap(item, &decision); err != nil {
			continue
		}
		if decision.TargetID == targetID && decision.Kind.Qualifying() {
			return true, nil
		}
	}
	return false, nil
}

func pairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + "#" + pair[1]
}
