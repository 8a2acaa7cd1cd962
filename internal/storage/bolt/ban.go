package bolt

import (
	"fmt"
	"strings"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// ListBans returns every banned site ordered by site.
func (s *Store) ListBans() ([]storage.Ban, error) {
	var out []storage.Ban
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBans).ForEach(func(k, v []byte) error {
			ban, err := decode[storage.Ban](v)
			if err != nil {
				return fmt.Errorf("bolt: decode ban %s: %w", k, err)
			}
			out = append(out, *ban)
			return nil
		})
	})
	return out, err
}

// AddBan records ban. Sites are case-insensitive.
//
// Postcondition: Returns storage.ErrBanExists when the site is already
// banned.
func (s *Store) AddBan(ban storage.Ban) error {
	ban.Site = strings.ToLower(ban.Site)
	data, err := encode(&ban)
	if err != nil {
		return fmt.Errorf("bolt: encode ban: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBans)
		if b.Get([]byte(ban.Site)) != nil {
			return storage.ErrBanExists
		}
		return b.Put([]byte(ban.Site), data)
	})
}

// RemoveBan lifts the ban on site and returns it.
//
// Postcondition: Returns storage.ErrBanNotFound when site is not banned.
func (s *Store) RemoveBan(site string) (storage.Ban, error) {
	var ban storage.Ban
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBans)
		key := []byte(strings.ToLower(site))
		data := b.Get(key)
		if data == nil {
			return storage.ErrBanNotFound
		}
		v, err := decode[storage.Ban](data)
		if err != nil {
			return fmt.Errorf("bolt: decode ban %s: %w", site, err)
		}
		ban = *v
		return b.Delete(key)
	})
	return ban, err
}
