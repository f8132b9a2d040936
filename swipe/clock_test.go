package swipe_test

import "time"

// mockClock controls time for deterministic testing.
type mockClock struct {
	current time.Time
}

func newMockClock() *mockClock {
	return &mockClock{current: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (m *mockClock) Now() time.Time {
	return m.current
}

func (m *mockClock) advance(d time.Duration) {
	m.current = m.current.Add(d)
}
