package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/argonfan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSpeedChanges = "speedChanges"

	// DefaultJournalSize is the number of speed changes kept by default
	DefaultJournalSize = 1000

	// max wait for a lock held by another process, writes happen inside a control tick
	lockTimeout = 1 * time.Second
)

// SpeedChange is a journal entry for a speed that was written to the fan.
// The journal is informational only, it is never used to restore controller state.
type SpeedChange struct {
	Time          time.Time `json:"time"`
	PreviousSpeed int       `json:"previousSpeed"`
	Speed         int       `json:"speed"`
	Temperature   float64   `json:"temperature"`
}

type Persistence interface {
	Init() error

	SaveSpeedChange(change SpeedChange) (err error)
	// LoadSpeedChanges returns at most limit entries, newest first.
	// A limit <= 0 returns all entries.
	LoadSpeedChanges(limit int) ([]SpeedChange, error)
	DeleteSpeedChanges() (err error)
}

type persistence struct {
	dbPath string
	// maxEntries is the number of newest speed changes kept, <= 0 keeps all of them
	maxEntries int
}

func NewPersistence(dbPath string, maxEntries int) Persistence {
	p := &persistence{
		dbPath:     dbPath,
		maxEntries: maxEntries,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// sequence numbers as big endian keep the keys in insertion order
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// SaveSpeedChange appends the given change to the journal and drops
// the oldest entries exceeding maxEntries
func (p persistence) SaveSpeedChange(change SpeedChange) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSpeedChanges))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		err = b.Put(itob(seq), data)
		if err != nil {
			return err
		}
		return p.trim(b, seq)
	})
}

// trim deletes all entries that are older than the newest maxEntries
func (p persistence) trim(b *bolt.Bucket, newest uint64) error {
	if p.maxEntries <= 0 || newest <= uint64(p.maxEntries) {
		return nil
	}
	oldestKept := newest - uint64(p.maxEntries) + 1

	c := b.Cursor()
	for k, _ := c.First(); k != nil && binary.BigEndian.Uint64(k) < oldestKept; k, _ = c.First() {
		err := c.Delete()
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadSpeedChanges loads the most recent journal entries from persistence
func (p persistence) LoadSpeedChanges(limit int) ([]SpeedChange, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []SpeedChange
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSpeedChanges))
		if b == nil {
			// nothing recorded yet
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}
			var change SpeedChange
			err := json.Unmarshal(v, &change)
			if err != nil {
				ui.Warning("Unable to unmarshal speed change %d: %v", binary.BigEndian.Uint64(k), err)
				continue
			}
			result = append(result, change)
		}
		return nil
	})

	return result, err
}

// DeleteSpeedChanges removes the whole journal
func (p persistence) DeleteSpeedChanges() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(BucketSpeedChanges))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
