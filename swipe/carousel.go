package swipe

import (
	"context"
	"sync"
	"time"
)

// Carousel drives the automatic photo progression for the presented card.
// It is a countdown state machine queried by a driver (Run in production,
// the test directly otherwise): when the countdown for the current photo
// expires the index advances and the countdown restarts, except on the last
// photo, which waits for an explicit action.
//
// Pausing captures the time already elapsed, so resuming runs only the
// remainder of the interval.
type Carousel struct {
	clock    Clock
	interval time.Duration

	// OnAdvance, when set, is called by Run with the new photo index after
	// each automatic advance.
	OnAdvance func(index int)

	mu         sync.Mutex
	photoCount int
	index      int
	running    bool
	startedAt  time.Time
	remaining  time.Duration
	loaded     bool
}

// NewCarousel creates a carousel with the given auto-advance interval.
func NewCarousel(interval time.Duration, clock Clock) *Carousel {
	if clock == nil {
		clock = RealClock{}
	}
	return &Carousel{clock: clock, interval: interval}
}

// Present resets the carousel for a newly presented card. The image of the
// new card starts unloaded: the renderer shows a neutral placeholder until
// MarkLoaded, never the previous card's photo.
func (c *Carousel) Present(photoCount, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photoCount = photoCount
	c.index = clampIndex(index, photoCount)
	c.loaded = false
	c.restartLocked()
}

// Jump shows a specific photo (edge tap or progress-segment tap) and
// restarts the full-duration countdown for it.
func (c *Carousel) Jump(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = clampIndex(index, c.photoCount)
	c.loaded = false
	c.restartLocked()
}

// Pause stops the countdown on touch-down, keeping the unelapsed remainder.
func (c *Carousel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	elapsed := c.clock.Now().Sub(c.startedAt)
	c.remaining -= elapsed
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.running = false
}

// Resume restarts the countdown on touch-up for only the remaining
// duration.
func (c *Carousel) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || !c.advancableLocked() || c.remaining <= 0 {
		return
	}
	c.startedAt = c.clock.Now()
	c.running = true
}

// Remaining returns the unelapsed part of the current countdown.
func (c *Carousel) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.remaining
	}
	left := c.remaining - c.clock.Now().Sub(c.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Index returns the photo currently shown.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Expired reports whether the running countdown has fully elapsed.
func (c *Carousel) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && c.clock.Now().Sub(c.startedAt) >= c.remaining
}

// Advance moves to the next photo after an expired countdown and restarts
// the full interval. On the last photo the carousel stops instead; moving
// on requires a swipe or explicit tap.
func (c *Carousel) Advance() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < c.photoCount-1 {
		c.index++
		c.loaded = false
	}
	c.restartLocked()
	return c.index
}

// MarkLoaded records that the current photo's image bytes finished loading.
func (c *Carousel) MarkLoaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
}

// ShowPlaceholder reports whether the renderer should show the neutral
// placeholder instead of the (not yet loaded) photo.
func (c *Carousel) ShowPlaceholder() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loaded
}

// Run drives the carousel with a coarse ticker until ctx is cancelled.
// Check granularity is far below the multi-second interval, so advance
// timing error is imperceptible.
func (c *Carousel) Run(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.Expired() {
				index := c.Advance()
				if c.OnAdvance != nil {
					c.OnAdvance(index)
				}
			}
		}
	}
}

func (c *Carousel) restartLocked() {
	if c.advancableLocked() {
		c.remaining = c.interval
		c.startedAt = c.clock.Now()
		c.running = true
	} else {
		c.remaining = 0
		c.running = false
	}
}

func (c *Carousel) advancableLocked() bool {
	return c.photoCount > 1 && c.index < c.photoCount-1
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if count > 0 && index > count-1 {
		return count - 1
	}
	return index
}
