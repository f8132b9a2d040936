package models

import (
	"errors"
	"math"
)

// CandidateCard is the view model for one swipeable profile. It is built
// once from a Profile row at the service boundary and never mutated after;
// the deck removes cards, it does not edit them.
type CandidateCard struct {
	UserID     string   `json:"userId"`
	Name       string   `json:"name"`
	Age        int      `json:"age,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Photos     []Photo  `json:"photos"`
	Prompts    []Prompt `json:"prompts,omitempty"`
	DistanceKm float64  `json:"distanceKm,omitempty"`
	BoostedMe  bool     `json:"boostedMe,omitempty"`
}

// CandidatePage is one page of ranked candidates for a viewer.
type CandidatePage struct {
	Candidates []CandidateCard `json:"candidates"`
	HasMore    bool            `json:"hasMore"`
}

// ErrMissingIdentity is returned when a backend row lacks a userId.
var ErrMissingIdentity = errors.New("candidate row missing userId")

// NewCandidateCard shapes a Profile row into a CandidateCard. distanceKm is
// the precomputed viewer-to-candidate distance; pass a negative value when
// unknown. boostedMe marks candidates whose superlike targets the viewer.
func NewCandidateCard(p Profile, distanceKm float64, boostedMe bool) (CandidateCard, error) {
	if p.UserID == "" {
		return CandidateCard{}, ErrMissingIdentity
	}
	card := CandidateCard{
		UserID:    p.UserID,
		Name:      p.Name,
		Age:       p.Age,
		Bio:       p.Bio,
		Interests: p.Interests,
		Photos:    p.Photos,
		Prompts:   p.Prompts,
		BoostedMe: boostedMe,
	}
	if distanceKm >= 0 {
		card.DistanceKm = math.Round(distanceKm*100) / 100
	}
	return card, nil
}
