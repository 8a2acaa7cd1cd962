package bolt_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/storage"
	"github.com/cory-johannsen/circlemud/internal/storage/bolt"
)

func openStore(t *testing.T) *bolt.Store {
	t.Helper()
	s, err := bolt.Open(filepath.Join(t.TempDir(), "circle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPlayers_SaveLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := &storage.PlayerRecord{Name: "Zara", Password: "pbkdf2$00", Level: 1, Gold: 42,
		LastLogon: time.Now().UTC()}
	require.NoError(t, s.Save(ctx, rec))
	assert.Equal(t, int64(1), rec.IDNum)

	second := &storage.PlayerRecord{Name: "Bob"}
	require.NoError(t, s.Save(ctx, second))
	assert.Equal(t, int64(2), second.IDNum)

	loaded, err := s.Load(ctx, "zARA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.IDNum)
	assert.Equal(t, 42, loaded.Gold)

	byID, err := s.LoadByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", byID.Name)

	_, err = s.Load(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)

	assert.ErrorIs(t, s.Save(ctx, &storage.PlayerRecord{Name: "ZARA"}), storage.ErrPlayerExists)
	assert.ErrorIs(t, s.Save(ctx, &storage.PlayerRecord{IDNum: 77, Name: "Ghost"}), storage.ErrPlayerNotFound)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPlayers_UpdateSetLevelDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := &storage.PlayerRecord{Name: "Zara", Level: 1}
	require.NoError(t, s.Save(ctx, rec))
	require.NoError(t, s.SetLevel(ctx, "zara", 34))
	loaded, err := s.Load(ctx, "Zara")
	require.NoError(t, err)
	assert.Equal(t, 34, loaded.Level)

	require.NoError(t, s.SaveRent(ctx, rec.IDNum, []storage.RentItem{{Vnum: 3020, Worn: 16}}))
	require.NoError(t, s.SaveAliases(rec.IDNum, command.Aliases{command.NewAlias("k", "kill")}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zara", list[0].Name)

	require.NoError(t, s.Delete(ctx, "ZARA"))
	ok, err := s.Exists(ctx, "Zara")
	require.NoError(t, err)
	assert.False(t, ok)
	items, err := s.LoadRent(ctx, rec.IDNum)
	require.NoError(t, err)
	assert.Empty(t, items)
	aliases, err := s.LoadAliases(rec.IDNum)
	require.NoError(t, err)
	assert.Empty(t, aliases)

	assert.ErrorIs(t, s.Delete(ctx, "Zara"), storage.ErrPlayerNotFound)
}

func TestRent_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	items, err := s.LoadRent(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, items)

	saved := []storage.RentItem{
		{Vnum: 3021, Worn: -1, Weight: 5, Contents: []storage.RentItem{{Vnum: 3022, Worn: -1, Values: [4]int{0, 0, 24, 0}}}},
	}
	require.NoError(t, s.SaveRent(ctx, 9, saved))
	items, err = s.LoadRent(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, saved, items)

	require.NoError(t, s.DeleteRent(ctx, 9))
	items, err = s.LoadRent(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestBoards(t *testing.T) {
	s := openStore(t)

	msgs, err := s.ListBoard("mortal")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	for i := range 3 {
		require.NoError(t, s.Post("mortal", storage.BoardMessage{Author: "Zara", Heading: fmt.Sprintf("post %d", i)}))
	}
	require.NoError(t, s.RemovePost("mortal", 2))
	msgs, err = s.ListBoard("mortal")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "post 0", msgs[0].Heading)
	assert.Equal(t, "post 2", msgs[1].Heading)

	assert.ErrorIs(t, s.RemovePost("mortal", 3), storage.ErrNoSuchMessage)
	assert.ErrorIs(t, s.RemovePost("mortal", 0), storage.ErrNoSuchMessage)
	assert.ErrorIs(t, s.RemovePost("immortal", 1), storage.ErrNoSuchMessage)
}

func TestBoards_Full(t *testing.T) {
	s := openStore(t)
	for range storage.MaxBoardMessages {
		require.NoError(t, s.Post("social", storage.BoardMessage{Heading: "spam"}))
	}
	assert.ErrorIs(t, s.Post("social", storage.BoardMessage{Heading: "one more"}), storage.ErrBoardFull)
}

func TestMail(t *testing.T) {
	s := openStore(t)

	has, err := s.HasMail(5)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.SendMail(5, 1, "first"))
	require.NoError(t, s.SendMail(5, 2, "second"))
	has, err = s.HasMail(5)
	require.NoError(t, err)
	assert.True(t, has)

	msgs, err := s.ReceiveMail(5)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, int64(2), msgs[1].From)

	has, err = s.HasMail(5)
	require.NoError(t, err)
	assert.False(t, has)
	msgs, err = s.ReceiveMail(5)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestBans(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.AddBan(storage.Ban{Site: "Evil.Example.com", Type: storage.BanAll, Name: "Admin"}))
	require.NoError(t, s.AddBan(storage.Ban{Site: "new.example.org", Type: storage.BanNew}))
	assert.ErrorIs(t, s.AddBan(storage.Ban{Site: "evil.example.com"}), storage.ErrBanExists)

	bans, err := s.ListBans()
	require.NoError(t, err)
	require.Len(t, bans, 2)
	assert.Equal(t, "evil.example.com", bans[0].Site)

	ban, err := s.RemoveBan("EVIL.example.com")
	require.NoError(t, err)
	assert.Equal(t, storage.BanAll, ban.Type)
	_, err = s.RemoveBan("evil.example.com")
	assert.ErrorIs(t, err, storage.ErrBanNotFound)
}

func TestAliases_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s, err := bolt.Open(filepath.Join(t.TempDir(), fmt.Sprintf("a%d.db", time.Now().UnixNano())))
		if err != nil {
			rt.Fatalf("open: %v", err)
		}
		defer s.Close()

		var as command.Aliases
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		for i := range n {
			as = as.Set(fmt.Sprintf("a%d", i), rapid.StringMatching(`[a-z ;$1*]{1,20}`).Draw(rt, "repl"))
		}
		if err := s.SaveAliases(3, as); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got, err := s.LoadAliases(3)
		if err != nil {
			rt.Fatalf("load: %v", err)
		}
		if len(got) != len(as) {
			rt.Fatalf("got %d aliases, want %d", len(got), len(as))
		}
		for i := range as {
			if got[i] != as[i] {
				rt.Fatalf("alias %d: got %+v, want %+v", i, got[i], as[i])
			}
		}
	})
}
