package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rlmesh/rlmesh/core"
)

var transitionPrefix = []byte("t/")

// Badger is a durable core.Memory backed by BadgerDB v4. Transitions are
// msgpack-encoded under monotonically increasing keys "t/<seq>" so a crashed
// run can resume with its experience intact.
type Badger struct {
	mu   sync.Mutex
	db   *badger.DB
	seq  uint64
	size int
	rng  *rand.Rand
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless InMemory.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Seed seeds the sampling source.
	Seed int64

	// Logger sets the badger logger. If nil, badger's output is suppressed.
	Logger badger.Logger
}

// NewBadger opens (or creates) a BadgerDB-backed memory and recovers the
// stored transition count from existing keys.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("memory: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	m := &Badger{db: db, rng: rand.New(rand.NewSource(opts.Seed))}
	if err := m.recover(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// recover scans existing keys to restore seq and size after a restart.
func (m *Badger) recover() error {
	return m.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = transitionPrefix
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(transitionPrefix); it.ValidForPrefix(transitionPrefix); it.Next() {
			seq := binary.BigEndian.Uint64(it.Item().Key()[len(transitionPrefix):])
			if seq >= m.seq {
				m.seq = seq + 1
			}
			m.size++
		}
		return nil
	})
}

func key(seq uint64) []byte {
	k := make([]byte, len(transitionPrefix)+8)
	copy(k, transitionPrefix)
	binary.BigEndian.PutUint64(k[len(transitionPrefix):], seq)
	return k
}

// Record encodes and persists the transition.
func (m *Badger) Record(t core.Transition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transition: %w", err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(m.seq), data)
	})
	if err != nil {
		return fmt.Errorf("store transition: %w", err)
	}
	m.seq++
	m.size++
	return nil
}

// Sample returns up to n transitions drawn uniformly without replacement.
func (m *Badger) Sample(n int) ([]core.Transition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}

	// Collect present keys first; sequences may be sparse after Clear.
	var keys [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = transitionPrefix
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Seek(transitionPrefix); it.ValidForPrefix(transitionPrefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n > len(keys) {
		n = len(keys)
	}

	out := make([]core.Transition, 0, n)
	err = m.db.View(func(txn *badger.Txn) error {
		for _, idx := range m.rng.Perm(len(keys))[:n] {
			item, err := txn.Get(keys[idx])
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var t core.Transition
			if err := msgpack.Unmarshal(val, &t); err != nil {
				return fmt.Errorf("decode transition: %w", err)
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of stored transitions.
func (m *Badger) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Clear removes all stored transitions in one write batch.
func (m *Badger) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wb := m.db.NewWriteBatch()
	defer wb.Cancel()
	err := m.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = transitionPrefix
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Seek(transitionPrefix); it.ValidForPrefix(transitionPrefix); it.Next() {
			if err := wb.Delete(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	m.size = 0
	return nil
}

// Close closes the underlying database.
func (m *Badger) Close() error { return m.db.Close() }

// quietLogger suppresses badger's debug and info output.
type quietLogger struct{}

func (quietLogger) Errorf(string, ...interface{})   {}
func (quietLogger) Warningf(string, ...interface{}) {}
func (quietLogger) Infof(string, ...interface{})    {}
func (quietLogger) Debugf(string, ...interface{})   {}
