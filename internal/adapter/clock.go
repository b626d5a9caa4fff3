package adapter

import "time"

// Clock abstracts wall-clock time so timestamps and tickers can be controlled in tests
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	// Now returns the current time in UTC
	Now() time.Time
	Since(t time.Time) time.Duration
	After(d time.Duration) <-chan time.Time
}

type utcClock struct{}

// NewClock creates a clock backed by the time package
func NewClock() Clock {
	return utcClock{}
}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

func (utcClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (utcClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
