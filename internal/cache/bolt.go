// Package cache keeps provider leg snapshots in a local BoltDB file so
// repeated searches do not hit slow providers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "snapshots"

var (
	ErrClosed = errors.New("cache closed")
	errMiss   = errors.New("cache miss")
)

type Entry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoltCache struct {
	db  *bolt.DB
	now func() time.Time
}

// New opens the cache at the default location under the user cache dir.
func New() (*BoltCache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(home, ".cache", "beetlebot", "travel", "snapshots.db"))
}

// Open opens (or creates) the cache file at path.
func Open(path string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &BoltCache{db: db, now: time.Now}, nil
}

func (c *BoltCache) Close() error {
	if c.db == nil {
		return ErrClosed
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Get returns the data stored under key if it is younger than ttl.
func (c *BoltCache) Get(key string, ttl time.Duration) ([]byte, bool) {
	if c.db == nil {
		return nil, false
	}

	var entry Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(CacheKey(key)))
		if v == nil {
			return errMiss
		}
		return json.Unmarshal(v, &entry)
	})
	if err != nil {
		return nil, false
	}

	if c.now().Sub(entry.CreatedAt) >= ttl {
		return nil, false
	}
	return entry.Data, true
}

func (c *BoltCache) Set(key string, data []byte) error {
	if c.db == nil {
		return ErrClosed
	}

	raw, err := json.Marshal(Entry{
		Key:       key,
		Data:      data,
		CreatedAt: c.now().UTC(),
	})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(CacheKey(key)), raw)
	})
}

// Clear drops every cached snapshot.
func (c *BoltCache) Clear() error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte("|"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
