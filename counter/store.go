package counter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/afero"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("counters")

var ErrInvalidKey = errors.New("counter key must match [a-zA-Z0-9._-]{1,64}")

var validKey = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

func ValidKey(key string) bool {
	return validKey.MatchString(key)
}

// Store keeps named counters in a bbolt file.
type Store struct {
	db *bolt.DB
}

// Open creates the parent directory of path through fs and opens the
// database file there. bbolt maps the file itself, so fs must be backed by
// the OS filesystem.
func Open(fs afero.Fs, path string) (*Store, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure counter dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open counter db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create counter bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value of key, 0 when it was never hit.
func (s *Store) Get(key string) (uint64, error) {
	if !ValidKey(key) {
		return 0, ErrInvalidKey
	}
	var v uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketName).Get([]byte(key)); len(raw) == 8 {
			v = binary.BigEndian.Uint64(raw)
		}
		return nil
	})
	return v, err
}

// Increment adds one to key and returns the new value.
func (s *Store) Increment(key string) (uint64, error) {
	if !ValidKey(key) {
		return 0, ErrInvalidKey
	}
	var v uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if raw := b.Get([]byte(key)); len(raw) == 8 {
			v = binary.BigEndian.Uint64(raw)
		}
		v++
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, v)
		return b.Put([]byte(key), buf)
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return v, nil
}
