package swipe

import "sync"

// MatchEvent is one mutual match surfaced to the presenting screen.
type MatchEvent struct {
	TargetID string
	MatchID  string
}

// Announcer holds at most one pending match event. The event is transient:
// it is displayed once and not persisted beyond the screen.
type Announcer struct {
	mu      sync.Mutex
	pending *MatchEvent
}

// Announce records a match for display, replacing any undisplayed one.
func (a *Announcer) Announce(targetID, matchID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &MatchEvent{TargetID: targetID, MatchID: matchID}
}

// Take returns the pending event and clears it, so it displays exactly
// once.
func (a *Announcer) Take() (MatchEvent, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return MatchEvent{}, false
	}
	event := *a.pending
	a.pending = nil
	return event, true
}
