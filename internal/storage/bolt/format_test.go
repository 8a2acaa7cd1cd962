package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

func TestEncode_LeadsWithFormatVersion(t *testing.T) {
	ban := storage.Ban{Site: "evil.example", Type: storage.BanAll, Name: "Zara"}
	data, err := encode(&ban)
	require.NoError(t, err)
	assert.Equal(t, formatVersion, data[0])

	got, err := decode[storage.Ban](data)
	require.NoError(t, err)
	assert.Equal(t, ban.Site, got.Site)
	assert.Equal(t, ban.Type, got.Type)
}

func TestDecode_RejectsForeignFormats(t *testing.T) {
	data, err := encode(&storage.Ban{Site: "x"})
	require.NoError(t, err)

	data[0] = formatVersion + 1
	_, err = decode[storage.Ban](data)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = decode[storage.Ban](nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadAliases_ForeignValueIsAnError(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "circle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAliases).Put(idToKey(7), []byte{0x7f, 1, 2, 3})
	}))
	_, err = s.LoadAliases(7)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
