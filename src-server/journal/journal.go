package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const runsBucket = "runs"

// Run is the outcome of scraping one source once.
type Run struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Inserted   int       `json:"inserted"`
	Duplicates int       `json:"duplicates"`
	Skipped    int       `json:"skipped"`
	// set when the source aborted
	Error string `json:"error,omitempty"`
}

func (r Run) Failed() bool {
	return r.Error != ""
}

// Journal keeps scrape runs in a bolt file, keyed by start time so a
// reverse cursor walks newest first.
type Journal struct {
	db *bolt.DB
}

func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("journal.Open: could not open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal.Open: unable to create bucket %s: %w", runsBucket, err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record stores r, assigning an ID when it has none.
func (j *Journal) Record(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("(*Journal).Record: %w", err)
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		if b == nil {
			return fmt.Errorf("(*Journal).Record: missing bucket %s", runsBucket)
		}
		return b.Put(runKey(r), raw)
	})
}

// Recent returns up to limit runs, newest first. limit <= 0 means all.
func (j *Journal) Recent(limit int) ([]Run, error) {
	runs := []Run{}
	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		if b == nil {
			return fmt.Errorf("(*Journal).Recent: missing bucket %s", runsBucket)
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var r Run
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("(*Journal).Recent: bad entry %s: %w", k, err)
			}
			runs = append(runs, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// fixed-width UTC timestamp, then the id for uniqueness
func runKey(r *Run) []byte {
	return []byte(r.StartedAt.UTC().Format("20060102T150405.000000000") + "/" + r.ID)
}
