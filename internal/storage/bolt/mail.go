package bolt

import (
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// SendMail files a letter for recipient to.
func (s *Store) SendMail(to, from int64, body string) error {
	msg := storage.MailMessage{From: from, To: to, Sent: time.Now(), Body: body}
	data, err := encode(&msg)
	if err != nil {
		return fmt.Errorf("bolt: encode mail: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(bucketMail).CreateBucketIfNotExists(idToKey(to))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(idToKey(int64(seq)), data)
	})
}

// HasMail reports whether letters are waiting for idnum.
func (s *Store) HasMail(idnum int64) (bool, error) {
	has := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMail).Bucket(idToKey(idnum))
		if b == nil {
			return nil
		}
		k, _ := b.Cursor().First()
		has = k != nil
		return nil
	})
	return has, err
}

// ReceiveMail removes and returns every letter waiting for idnum, oldest
// first.
func (s *Store) ReceiveMail(idnum int64) ([]storage.MailMessage, error) {
	var out []storage.MailMessage
	err := s.db.Update(func(tx *bbolt.Tx) error {
		mail := tx.Bucket(bucketMail)
		b := mail.Bucket(idToKey(idnum))
		if b == nil {
			return nil
		}
		err := b.ForEach(func(k, v []byte) error {
			msg, err := decode[storage.MailMessage](v)
			if err != nil {
				return fmt.Errorf("bolt: decode mail %d: %w", keyToID(k), err)
			}
			out = append(out, *msg)
			return nil
		})
		if err != nil {
			return err
		}
		return mail.DeleteBucket(idToKey(idnum))
	})
	return out, err
}
