package localtime

import "time"

// Clock abstracts the monotonic system clock so schedulers and the second
// source can be driven by a deterministic clock in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// SystemClock returns the real clock backed by the time package.
func SystemClock() Clock { return systemClock{} }
