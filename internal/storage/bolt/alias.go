package bolt

import (
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/game/command"
)

// LoadAliases returns the aliases saved for player idnum.
func (s *Store) LoadAliases(idnum int64) (command.Aliases, error) {
	var out command.Aliases
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAliases).Get(idToKey(idnum))
		if data == nil {
			return nil
		}
		v, err := decode[command.Aliases](data)
		if err != nil {
			return fmt.Errorf("bolt: decode aliases #%d: %w", idnum, err)
		}
		out = *v
		return nil
	})
	return out, err
}

// SaveAliases replaces the aliases of player idnum. An empty list deletes
// the entry.
func (s *Store) SaveAliases(idnum int64, aliases command.Aliases) error {
	if len(aliases) == 0 {
		return s.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketAliases).Delete(idToKey(idnum))
		})
	}
	data, err := encode(&aliases)
	if err != nil {
		return fmt.Errorf("bolt: encode aliases #%d: %w", idnum, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAliases).Put(idToKey(idnum), data)
	})
}
