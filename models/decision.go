package models

// DecisionKind is the viewer's choice about a candidate.
type DecisionKind string

const (
	DecisionLike      DecisionKind = "like"
	DecisionPass      DecisionKind = "pass"
	DecisionSuperlike DecisionKind = "superlike"
)

// Valid reports whether the kind is one of the three known decisions.
func (k DecisionKind) Valid() bool {
	return k == DecisionLike || k == DecisionPass || k == DecisionSuperlike
}

// Qualifying reports whether the kind can produce a match.
func (k DecisionKind) Qualifying() bool {
	return k == DecisionLike || k == DecisionSuperlike
}

// Decision records one viewer's choice about a target, optionally scoped to
// an event. Rows are keyed (actorId, targetKey) where targetKey folds in the
// event context, so re-submitting the same decision overwrites in place.
type Decision struct {
	ActorID   string       `dynamodbav:"actorId"`
	TargetKey string       `dynamodbav:"targetKey"`
	TargetID  string       `dynamodbav:"targetId"`
	EventID   string       `dynamodbav:"eventId,omitempty"`
	Kind      DecisionKind `dynamodbav:"kind"`
	CreatedAt string       `dynamodbav:"createdAt"`
}

// Match is a mutual qualifying decision between two users. PairKey is the
// sorted join of both user ids, so the pair maps to exactly one row.
type Match struct {
	PairKey   string `dynamodbav:"pairKey"`
	MatchID   string `dynamodbav:"matchId"`
	UserA     string `dynamodbav:"userA"`
	UserB     string `dynamodbav:"userB"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// SuperlikeQuota tracks one user's remaining superlikes for a UTC day.
type SuperlikeQuota struct {
	UserID    string `dynamodbav:"userId"`
	Day       string `dynamodbav:"day"`
	Remaining int    `dynamodbav:"remaining"`
}

const (
	DecisionsTable = "MinglDecisions"
	MatchesTable   = "MinglMatches"
	QuotasTable    = "MinglQuotas"

	// DecisionsByTargetIndex is the GSI used to find decisions aimed at a
	// user (boosted-me lookup and mutual-match checks).
	DecisionsByTargetIndex = "targetId-index"
)
