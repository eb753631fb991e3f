// Package history keeps a local ledger of transactions this operator has
// submitted, so past signatures survive across sessions without any external
// infrastructure.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var keyPrefix = []byte("sub:")

// Submission is one confirmed transaction submission.
type Submission struct {
	Signature string    `json:"signature"`
	Kind      string    `json:"kind"`
	Lamports  uint64    `json:"lamports"`
	Recipient string    `json:"recipient,omitempty"`
	Account   string    `json:"account,omitempty"`
	Time      time.Time `json:"time"`
}

// Store is a Badger-backed submission log.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at the given directory.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history at %s (is another solterm instance running?): %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a submission. Keys are prefix + big-endian unix-nano
// timestamp + signature, so lexicographic order is chronological order.
func (s *Store) Record(sub Submission) error {
	if sub.Time.IsZero() {
		sub.Time = time.Now().UTC()
	}

	val, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	key := make([]byte, 0, len(keyPrefix)+8+len(sub.Signature))
	key = append(key, keyPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(sub.Time.UnixNano()))
	key = append(key, sub.Signature...)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// List returns up to limit submissions, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(limit int) ([]Submission, error) {
	var subs []Submission

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = keyPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode, seek past the end of the prefix range so the
		// iterator lands on the newest key.
		seek := append(append([]byte{}, keyPrefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for it.Seek(seek); it.ValidForPrefix(keyPrefix); it.Next() {
			if limit > 0 && len(subs) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var sub Submission
				if err := json.Unmarshal(val, &sub); err != nil {
					return fmt.Errorf("unmarshal submission: %w", err)
				}
				subs = append(subs, sub)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
