package swipe

import (
	"context"
	"io"
	"log"
	"net/http"
	"sync"

	"mingl_server/models"
)

// prefetchPhotoLimit caps how many of the on-deck card's photos are warmed.
const prefetchPhotoLimit = 3

// Prefetcher warms photo URLs for the on-deck card so presenting it does
// not flash a loading placeholder. Fetches are best-effort and
// fire-and-forget.
type Prefetcher struct {
	Client *http.Client

	mu     sync.Mutex
	warmed map[string]bool
}

// NewPrefetcher creates a prefetcher using the given HTTP client, or the
// default client when nil.
func NewPrefetcher(client *http.Client) *Prefetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prefetcher{Client: client, warmed: make(map[string]bool)}
}

// WarmCard fetches up to the first three photos of the card in the
// background.
func (p *Prefetcher) WarmCard(ctx context.Context, card models.CandidateCard) {
	for i, photo := range card.Photos {
		if i >= prefetchPhotoLimit {
			break
		}
		url := photo.URL
		if url == "" || p.alreadyWarmed(url) {
			continue
		}
		go p.warm(ctx, url)
	}
}

func (p *Prefetcher) alreadyWarmed(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.warmed[url] {
		return true
	}
	p.warmed[url] = true
	return false
}

func (p *Prefetcher) warm(ctx context.Context, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		log.Printf("Photo prefetch failed for %s: %v", url, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
}
