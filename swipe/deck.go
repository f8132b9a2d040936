package swipe

import (
	"fmt"
	"strings"
	"sync"

	"mingl_server/models"
)

// Deck is the in-memory ordered queue of candidate cards for one (viewer,
// context) pair. The head is the card currently presented. Cards are never
// mutated in place; a committed decision removes the head, and a change in
// the upstream candidate identity replaces the whole deck.
type Deck struct {
	mu         sync.Mutex
	cards      []models.CandidateCard
	decided    map[string]bool
	fetchedIDs []string
	identity   string
	hasMore    bool
	refilling  bool
	lowWater   int
}

// NewDeck creates an empty deck with the given low-water mark.
func NewDeck(lowWater int) *Deck {
	return &Deck{
		decided:  make(map[string]bool),
		lowWater: lowWater,
	}
}

// Resync replaces the deck when the identity of the upstream candidate set
// changed. page must be the full concatenation the caller currently knows
// (offset 0). When the ordered identity list matches what the deck was
// built from, only hasMore is refreshed; otherwise the decided-set is reset
// and the deck rebuilt, since stale cards must not linger after an
// eligibility change upstream.
func (d *Deck) Resync(page models.CandidatePage) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(page.Candidates))
	for _, card := range page.Candidates {
		ids = append(ids, card.UserID)
	}
	identity := strings.Join(ids, ",")
	if identity == d.identity {
		d.hasMore = page.HasMore
		return
	}

	d.decided = make(map[string]bool)
	d.cards = d.cards[:0]
	d.fetchedIDs = d.fetchedIDs[:0]
	seen := make(map[string]bool, len(page.Candidates))
	for _, card := range page.Candidates {
		if seen[card.UserID] {
			continue
		}
		seen[card.UserID] = true
		d.cards = append(d.cards, card)
		d.fetchedIDs = append(d.fetchedIDs, card.UserID)
	}
	d.identity = identity
	d.hasMore = page.HasMore
}

// Append adds a later page to the back of the deck, dropping identities
// already present or already decided this session. A refill race can hand
// back a card that was just decided; the decided-set keeps it out.
func (d *Deck) Append(page models.CandidatePage) {
	d.mu.Lock()
	defer d.mu.Unlock()

	present := make(map[string]bool, len(d.cards))
	for _, card := range d.cards {
		present[card.UserID] = true
	}
	for _, card := range page.Candidates {
		if present[card.UserID] || d.decided[card.UserID] {
			continue
		}
		present[card.UserID] = true
		d.cards = append(d.cards, card)
		d.fetchedIDs = append(d.fetchedIDs, card.UserID)
	}
	d.identity = strings.Join(d.fetchedIDs, ",")
	d.hasMore = page.HasMore
}

// Head returns the presented card.
func (d *Deck) Head() (models.CandidateCard, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return models.CandidateCard{}, false
	}
	return d.cards[0], true
}

// OnDeck returns the card queued behind the head, if any. It is the
// prefetch target: its photos should be warm before it is presented.
func (d *Deck) OnDeck() (models.CandidateCard, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) < 2 {
		return models.CandidateCard{}, false
	}
	return d.cards[1], true
}

// CommitHead removes the head after its decision was durably accepted and
// marks the identity decided for the rest of the session.
func (d *Deck) CommitHead(targetID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return fmt.Errorf("commit on empty deck")
	}
	if d.cards[0].UserID != targetID {
		return fmt.Errorf("commit target %s is not the deck head %s", targetID, d.cards[0].UserID)
	}
	d.decided[targetID] = true
	d.cards = d.cards[1:]
	return nil
}

// Len returns the number of cards left to swipe.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// IDs returns the card identities in deck order.
func (d *Deck) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, len(d.cards))
	for i, card := range d.cards {
		ids[i] = card.UserID
	}
	return ids
}

// NeedsRefill reports whether the deck dropped to the low-water mark with
// more pages known to exist upstream.
func (d *Deck) NeedsRefill() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards) <= d.lowWater && d.hasMore && !d.refilling
}

// NextOffset is the upstream offset of the next unfetched page. Upstream
// excludes already-decided identities from its ranked list, so every commit
// this generation shifts the unfetched remainder down by one.
func (d *Deck) NextOffset() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fetchedIDs) - len(d.decided)
}

// FetchedCount is the number of identities fetched this generation; the
// periodic refresher re-pulls at least this many to rebuild the full
// concatenation.
func (d *Deck) FetchedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fetchedIDs)
}

// beginRefill marks a refill in flight; only one runs at a time.
func (d *Deck) beginRefill() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refilling {
		return false
	}
	d.refilling = true
	return true
}

func (d *Deck) endRefill() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refilling = false
}
