package scheduler

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"
)

var (
	countersBucket = []byte("counters")
	countersKey    = []byte("attempts")
)

// Counters are the scheduler's attempt bookkeeping. Loaded once at
// startup (zero-valued when the file is new), mutated once per cycle,
// saved after every cycle.
type Counters struct {
	Attempts       int64 `json:"attempts"`
	Successes      int64 `json:"successes"`
	Failures       int64 `json:"failures"`
	LastDurationMS int64 `json:"last_duration_ms"`
}

// Observe records the outcome of one job cycle.
func (c *Counters) Observe(ok bool, took time.Duration) {
	c.Attempts++
	if ok {
		c.Successes++
	} else {
		c.Failures++
	}
	c.LastDurationMS = took.Milliseconds()
}

// CounterStore persists Counters in a local bbolt file.
type CounterStore struct {
	db *bbolt.DB
}

func OpenCounterStore(path string) (*CounterStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(countersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &CounterStore{db: db}, nil
}

func (s *CounterStore) Load() (Counters, error) {
	var c Counters
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(countersBucket).Get(countersKey)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &c)
	})
	return c, err
}

func (s *CounterStore) Save(c Counters) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(countersBucket).Put(countersKey, raw)
	})
}

func (s *CounterStore) Close() error {
	return s.db.Close()
}
