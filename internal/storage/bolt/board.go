package bolt

import (
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// ListBoard returns the posts on board, oldest first.
func (s *Store) ListBoard(board string) ([]storage.BoardMessage, error) {
	var out []storage.BoardMessage
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBoards).Bucket([]byte(board))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			msg, err := decode[storage.BoardMessage](v)
			if err != nil {
				return fmt.Errorf("bolt: decode %s post %d: %w", board, keyToID(k), err)
			}
			out = append(out, *msg)
			return nil
		})
	})
	return out, err
}

// Post appends msg to board.
//
// Postcondition: Returns storage.ErrBoardFull when the board already holds
// storage.MaxBoardMessages posts.
func (s *Store) Post(board string, msg storage.BoardMessage) error {
	data, err := encode(&msg)
	if err != nil {
		return fmt.Errorf("bolt: encode post: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(bucketBoards).CreateBucketIfNotExists([]byte(board))
		if err != nil {
			return err
		}
		if countKeys(b) >= storage.MaxBoardMessages {
			return storage.ErrBoardFull
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(idToKey(int64(seq)), data)
	})
}

// RemovePost deletes the nth post (1-based, oldest first) from board.
//
// Postcondition: Returns storage.ErrNoSuchMessage when n is out of range.
func (s *Store) RemovePost(board string, n int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBoards).Bucket([]byte(board))
		if b == nil || n < 1 {
			return storage.ErrNoSuchMessage
		}
		c := b.Cursor()
		i := 1
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if i == n {
				return c.Delete()
			}
			i++
		}
		return storage.ErrNoSuchMessage
	})
}
