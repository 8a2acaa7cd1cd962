package bolt

import (
	"context"
	"fmt"
	"strings"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// Load returns the player named name, matched case-insensitively.
//
// Postcondition: Returns the record or storage.ErrPlayerNotFound.
func (s *Store) Load(_ context.Context, name string) (*storage.PlayerRecord, error) {
	var rec *storage.PlayerRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(bucketPlayerNames).Get([]byte(strings.ToLower(name)))
		if key == nil {
			return storage.ErrPlayerNotFound
		}
		var err error
		rec, err = loadPlayer(tx, key)
		return err
	})
	return rec, err
}

// LoadByID returns the player with the given idnum.
func (s *Store) LoadByID(_ context.Context, idnum int64) (*storage.PlayerRecord, error) {
	var rec *storage.PlayerRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		rec, err = loadPlayer(tx, idToKey(idnum))
		return err
	})
	return rec, err
}

func loadPlayer(tx *bbolt.Tx, key []byte) (*storage.PlayerRecord, error) {
	data := tx.Bucket(bucketPlayers).Get(key)
	if data == nil {
		return nil, storage.ErrPlayerNotFound
	}
	rec, err := decode[storage.PlayerRecord](data)
	if err != nil {
		return nil, fmt.Errorf("bolt: decode player #%d: %w", keyToID(key), err)
	}
	rec.IDNum = keyToID(key)
	return rec, nil
}

// Save inserts rec when it has no idnum yet, otherwise updates it. New
// idnums come from the bucket sequence.
//
// Postcondition: rec.IDNum is set, or storage.ErrPlayerExists /
// storage.ErrPlayerNotFound is returned.
func (s *Store) Save(_ context.Context, rec *storage.PlayerRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		players := tx.Bucket(bucketPlayers)
		names := tx.Bucket(bucketPlayerNames)
		lower := []byte(strings.ToLower(rec.Name))

		id := rec.IDNum
		if id == 0 {
			if names.Get(lower) != nil {
				return storage.ErrPlayerExists
			}
			seq, err := players.NextSequence()
			if err != nil {
				return err
			}
			id = int64(seq)
		} else {
			old := players.Get(idToKey(id))
			if old == nil {
				return storage.ErrPlayerNotFound
			}
			prev, err := decode[storage.PlayerRecord](old)
			if err == nil && !strings.EqualFold(prev.Name, rec.Name) {
				if err := names.Delete([]byte(strings.ToLower(prev.Name))); err != nil {
					return err
				}
			}
		}

		out := *rec
		out.IDNum = id
		data, err := encode(&out)
		if err != nil {
			return fmt.Errorf("bolt: encode player %s: %w", rec.Name, err)
		}
		if err := players.Put(idToKey(id), data); err != nil {
			return err
		}
		if err := names.Put(lower, idToKey(id)); err != nil {
			return err
		}
		rec.IDNum = id
		return nil
	})
}

// Exists reports whether a player named name is on file.
func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketPlayerNames).Get([]byte(strings.ToLower(name))) != nil
		return nil
	})
	return found, err
}

// Count returns the number of player records.
func (s *Store) Count(_ context.Context) (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = countKeys(tx.Bucket(bucketPlayers))
		return nil
	})
	return n, err
}

// Delete removes a player and their rent and aliases.
func (s *Store) Delete(_ context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		names := tx.Bucket(bucketPlayerNames)
		lower := []byte(strings.ToLower(name))
		key := names.Get(lower)
		if key == nil {
			return storage.ErrPlayerNotFound
		}
		key = append([]byte(nil), key...)
		if err := names.Delete(lower); err != nil {
			return err
		}
		for _, b := range [][]byte{bucketPlayers, bucketRent, bucketAliases} {
			if err := tx.Bucket(b).Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the player index ordered by idnum.
func (s *Store) List(_ context.Context) ([]storage.PlayerSummary, error) {
	var out []storage.PlayerSummary
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPlayers).ForEach(func(k, v []byte) error {
			rec, err := decode[storage.PlayerRecord](v)
			if err != nil {
				return fmt.Errorf("bolt: decode player #%d: %w", keyToID(k), err)
			}
			out = append(out, storage.PlayerSummary{
				IDNum:     keyToID(k),
				Name:      rec.Name,
				Level:     rec.Level,
				LastLogon: rec.LastLogon,
				Deleted:   rec.Deleted(),
			})
			return nil
		})
	})
	return out, err
}

// SetLevel changes a player's saved level.
func (s *Store) SetLevel(ctx context.Context, name string, level int) error {
	rec, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	rec.Level = level
	return s.Save(ctx, rec)
}

// LoadRent returns the saved objects of player idnum.
func (s *Store) LoadRent(_ context.Context, idnum int64) ([]storage.RentItem, error) {
	var items []storage.RentItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRent).Get(idToKey(idnum))
		if data == nil {
			return nil
		}
		v, err := decode[[]storage.RentItem](data)
		if err != nil {
			return fmt.Errorf("bolt: decode rent #%d: %w", idnum, err)
		}
		items = *v
		return nil
	})
	return items, err
}

// SaveRent replaces the rent file of player idnum.
func (s *Store) SaveRent(_ context.Context, idnum int64, items []storage.RentItem) error {
	data, err := encode(&items)
	if err != nil {
		return fmt.Errorf("bolt: encode rent #%d: %w", idnum, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRent).Put(idToKey(idnum), data)
	})
}

// DeleteRent removes the rent file of player idnum.
func (s *Store) DeleteRent(_ context.Context, idnum int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRent).Delete(idToKey(idnum))
	})
}
