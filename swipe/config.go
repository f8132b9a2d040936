package swipe

import "time"

// Config carries the tunables of the swipe engine. Distances are in logical
// pixels of the card coordinate space.
type Config struct {
	// DeadZone is the movement below which a gesture stays undecided.
	DeadZone float64
	// EdgeZoneFraction is the fraction of the card width from either side
	// in which a horizontal drag starts a photo scrub instead of a swipe.
	EdgeZoneFraction float64
	// PhotoSwipeDistance is the horizontal drag needed per photo-scrub step.
	PhotoSwipeDistance float64
	// SwipeThreshold is the hard horizontal distance that decides a card.
	SwipeThreshold float64
	// SoftThresholdRatio scales SwipeThreshold down for decisive but not
	// maximal swipes.
	SoftThresholdRatio float64
	// PromoteRatio scales SwipeThreshold to the distance at which a fast
	// horizontal flick escapes photo-scrub mode into card mode.
	PromoteRatio float64
	// SuperlikeThreshold is the upward distance that commits a superlike.
	SuperlikeThreshold float64
	// SuperIndicatorStart is the upward distance at which the SUPER
	// indicator begins fading in.
	SuperIndicatorStart float64
	// MaxRotationDeg clamps the card rotation driven by horizontal drag.
	MaxRotationDeg float64
	// EndDebounce suppresses duplicate gesture end callbacks.
	EndDebounce time.Duration

	// CarouselInterval is the auto-advance period per photo.
	CarouselInterval time.Duration

	// LowWaterMark is the deck length at or below which the next candidate
	// page is requested.
	LowWaterMark int
	// PageSize is the candidate page size requested on refill.
	PageSize int
	// RefreshInterval is the period of the background deck/quota re-pull.
	RefreshInterval time.Duration
	// TutorialDismissEvery auto-dismisses a visible first-run tutorial
	// after this many decided cards. Zero disables the heuristic.
	TutorialDismissEvery int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		DeadZone:             6,
		EdgeZoneFraction:     0.25,
		PhotoSwipeDistance:   50,
		SwipeThreshold:       120,
		SoftThresholdRatio:   0.7,
		PromoteRatio:         0.5,
		SuperlikeThreshold:   140,
		SuperIndicatorStart:  60,
		MaxRotationDeg:       12,
		EndDebounce:          80 * time.Millisecond,
		CarouselInterval:     3 * time.Second,
		LowWaterMark:         5,
		PageSize:             20,
		RefreshInterval:      45 * time.Second,
		TutorialDismissEvery: 4,
	}
}

// SoftThreshold is the softer commit distance derived from the hard one.
func (c Config) SoftThreshold() float64 {
	return c.SwipeThreshold * c.SoftThresholdRatio
}

// PromoteDistance is the photo-to-card escape distance.
func (c Config) PromoteDistance() float64 {
	return c.SwipeThreshold * c.PromoteRatio
}
