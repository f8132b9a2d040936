package swipe

import (
	"context"
	"log"
	"time"
)

// Refresher periodically re-pulls the deck and the superlike quota so the
// screen tracks upstream eligibility changes (for example a new viewer
// location). It stops when its context is cancelled on screen teardown.
type Refresher struct {
	cfg       Config
	deck      *Deck
	source    CandidateSource
	committer *Committer
}

// NewRefresher wires a refresher for one screen instance.
func NewRefresher(cfg Config, deck *Deck, source CandidateSource, committer *Committer) *Refresher {
	return &Refresher{cfg: cfg, deck: deck, source: source, committer: committer}
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	r.RefreshOnce(ctx)
	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce re-fetches the full known concatenation from offset zero and
// resyncs the deck, then refreshes the quota hint. Failures are logged and
// retried on the next tick; the deck keeps its current cards.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	limit := r.deck.FetchedCount()
	if limit < r.cfg.PageSize {
		limit = r.cfg.PageSize
	}
	page, err := r.source.FetchPage(ctx, 0, limit)
	if err != nil {
		log.Printf("Deck refresh failed: %v", err)
	} else {
		r.deck.Resync(page)
		r.committer.WarmOnDeck(ctx)
	}

	remaining, err := r.source.RefreshQuota(ctx)
	if err != nil {
		log.Printf("Quota refresh failed: %v", err)
		return
	}
	r.committer.SetQuota(remaining)
}
