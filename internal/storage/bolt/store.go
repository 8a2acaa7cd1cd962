// Package bolt keeps boards, mail, bans, aliases and (optionally) players
// in a single bbolt file. Values are gob-encoded behind a one-byte format
// version.
package bolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"

	bbolt "go.etcd.io/bbolt"
)

// Bucket names.
var (
	bucketPlayers     = []byte("players")
	bucketPlayerNames = []byte("player_names")
	bucketRent        = []byte("rent")
	bucketBoards      = []byte("boards")
	bucketMail        = []byte("mail")
	bucketBans        = []byte("bans")
	bucketAliases     = []byte("aliases")
)

// Store wraps a bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path and ensures every bucket
// exists.
//
// Postcondition: Returns an open Store or a non-nil error.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPlayers, bucketPlayerNames, bucketRent,
			bucketBoards, bucketMail, bucketBans, bucketAliases} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the filesystem path of the database.
func (s *Store) Path() string { return s.db.Path() }

// idToKey converts an id to an 8-byte big-endian key so cursors iterate
// in numeric order.
func idToKey(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func keyToID(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

func countKeys(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

// formatVersion leads every stored value. Bump it when a record changes
// in a way gob cannot absorb, and teach decode the old layout.
const formatVersion byte = 1

// ErrUnknownFormat is returned for a value written by a newer or foreign
// encoder.
var ErrUnknownFormat = errors.New("bolt: unknown value format")

func encode[T any](v *T) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(formatVersion)
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode[T any](data []byte) (*T, error) {
	if len(data) == 0 || data[0] != formatVersion {
		return nil, ErrUnknownFormat
	}
	var v T
	if err := gob.NewDecoder(bytes.NewReader(data[1:])).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
