package swipe

import (
	"context"
	"errors"
	"log"
	"sync"

	"mingl_server/models"
)

// Haptics issues device feedback when a decision is initiated.
type Haptics interface {
	Impact(kind models.DecisionKind)
}

// Notices surfaces user-visible notices from the engine.
type Notices interface {
	QuotaExceeded()
}

// CacheInvalidator drops cached candidate queries after a successful
// decision. eventID "" names the classic pool. Implementations should fan
// the classic invalidation out to any cached event-scoped queries too: a
// decision made in one context must not let the candidate reappear in the
// other.
type CacheInvalidator interface {
	InvalidateCandidates(eventID string)
	InvalidateEventPending(eventID string)
}

// Tutorial is the first-run overlay hook; the committer auto-dismisses it
// after a few decided cards.
type Tutorial interface {
	Visible() bool
	Dismiss()
}

// CommitterOptions wires the committer's collaborators. Haptics, Notices,
// Caches, Tutorial, Prefetcher, OnRestore and OnAdvance may be nil.
type CommitterOptions struct {
	Deck       *Deck
	Source     CandidateSource
	Announcer  *Announcer
	Haptics    Haptics
	Notices    Notices
	Caches     CacheInvalidator
	Tutorial   Tutorial
	Prefetcher *Prefetcher

	// EventID scopes the committer to an event pool; empty is classic.
	EventID string

	// OnRestore springs the card back and resets gesture state after a
	// refused or failed decision. OnAdvance resets transient state (photo
	// index, gesture) after the deck advanced.
	OnRestore func()
	OnAdvance func()
}

// Committer issues exactly one decision per user action and keeps the deck,
// quota hint, match state and caches consistent. The deck advances only
// after the decision is durably accepted upstream; on any failure the
// presented card is restored, never skipped.
type Committer struct {
	cfg  Config
	opts CommitterOptions

	mu           sync.Mutex
	busy         bool
	quota        int
	decidedCount int
}

// NewCommitter builds a committer. The quota hint starts at zero; call
// SetQuota once the first RefreshQuota result arrives.
func NewCommitter(cfg Config, opts CommitterOptions) *Committer {
	return &Committer{cfg: cfg, opts: opts}
}

// SetQuota updates the client-side remaining-superlikes hint.
func (c *Committer) SetQuota(remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quota = remaining
}

// Quota returns the client-side remaining-superlikes hint.
func (c *Committer) Quota() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quota
}

// DecidedCount returns how many cards were decided this session.
func (c *Committer) DecidedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decidedCount
}

// Decide commits one decision for the presented card. Calls while another
// decision is in flight are no-ops. A superlike with no remaining quota is
// refused locally without contacting the backend; the authoritative check
// still happens upstream and a quota race is handled like any refusal:
// notice, quota refresh, card restored.
func (c *Committer) Decide(ctx context.Context, kind models.DecisionKind) error {
	if !c.begin() {
		return nil
	}
	defer c.end()

	head, ok := c.opts.Deck.Head()
	if !ok {
		return nil
	}

	if kind == models.DecisionSuperlike && c.Quota() <= 0 {
		c.notifyQuota()
		c.restore()
		return ErrQuotaExceeded
	}

	if c.opts.Haptics != nil {
		c.opts.Haptics.Impact(kind)
	}

	if err := c.opts.Source.SubmitDecision(ctx, head.UserID, kind); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			c.notifyQuota()
			if remaining, qerr := c.opts.Source.RefreshQuota(ctx); qerr == nil {
				c.SetQuota(remaining)
			}
		} else {
			log.Printf("Decision submit failed for %s: %v", head.UserID, err)
		}
		c.restore()
		return err
	}

	if kind.Qualifying() {
		// A failed consistency check never blocks the decision; it just
		// means no match is shown.
		if matched, matchID, err := c.opts.Source.CheckMatch(ctx, head.UserID); err == nil && matched {
			if c.opts.Announcer != nil {
				c.opts.Announcer.Announce(head.UserID, matchID)
			}
		}
	}

	if kind == models.DecisionSuperlike {
		c.mu.Lock()
		c.quota--
		c.mu.Unlock()
	}

	c.invalidateCaches()

	if err := c.opts.Deck.CommitHead(head.UserID); err != nil {
		log.Printf("Deck commit failed: %v", err)
	}
	if c.opts.OnAdvance != nil {
		c.opts.OnAdvance()
	}

	c.mu.Lock()
	c.decidedCount++
	decided := c.decidedCount
	c.mu.Unlock()
	if c.opts.Tutorial != nil && c.opts.Tutorial.Visible() &&
		c.cfg.TutorialDismissEvery > 0 && decided%c.cfg.TutorialDismissEvery == 0 {
		c.opts.Tutorial.Dismiss()
	}

	c.WarmOnDeck(ctx)

	c.RefillAsync()
	return nil
}

// WarmOnDeck prefetches the photos of the card queued behind the head. It
// runs after every deck mutation that can change the on-deck card: the
// initial load, a resync replacement, a refill append, and each commit.
func (c *Committer) WarmOnDeck(ctx context.Context) {
	if c.opts.Prefetcher == nil {
		return
	}
	if next, ok := c.opts.Deck.OnDeck(); ok {
		c.opts.Prefetcher.WarmCard(ctx, next)
	}
}

// Refill fetches and appends the next candidate page if the deck is at or
// below its low-water mark. At most one refill runs at a time.
func (c *Committer) Refill(ctx context.Context) error {
	if !c.opts.Deck.NeedsRefill() {
		return nil
	}
	if !c.opts.Deck.beginRefill() {
		return nil
	}
	defer c.opts.Deck.endRefill()

	page, err := c.opts.Source.FetchPage(ctx, c.opts.Deck.NextOffset(), c.cfg.PageSize)
	if err != nil {
		log.Printf("Deck refill failed: %v", err)
		return err
	}
	c.opts.Deck.Append(page)
	c.WarmOnDeck(ctx)
	return nil
}

// RefillAsync runs Refill in the background; the UI never blocks on a
// refill.
func (c *Committer) RefillAsync() {
	if !c.opts.Deck.NeedsRefill() {
		return
	}
	go func() {
		_ = c.Refill(context.Background())
	}()
}

func (c *Committer) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Committer) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

func (c *Committer) restore() {
	if c.opts.OnRestore != nil {
		c.opts.OnRestore()
	}
}

func (c *Committer) notifyQuota() {
	if c.opts.Notices != nil {
		c.opts.Notices.QuotaExceeded()
	}
}

func (c *Committer) invalidateCaches() {
	if c.opts.Caches == nil {
		return
	}
	c.opts.Caches.InvalidateCandidates("")
	if c.opts.EventID != "" {
		c.opts.Caches.InvalidateCandidates(c.opts.EventID)
		c.opts.Caches.InvalidateEventPending(c.opts.EventID)
	}
}
