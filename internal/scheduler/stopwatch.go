package scheduler

import "time"

// Stopwatch times one scheduler cycle. Not safe for concurrent use;
// the loop is single-threaded.
type Stopwatch struct {
	startedAt time.Time
}

func (s *Stopwatch) Start() {
	s.startedAt = time.Now()
}

// Stop returns the elapsed time since Start and resets the watch.
// Stopping a watch that was never started reports zero.
func (s *Stopwatch) Stop() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	elapsed := time.Since(s.startedAt)
	s.startedAt = time.Time{}
	return elapsed
}
