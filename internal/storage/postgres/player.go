package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// PlayerRepository stores player records. Indexed columns mirror the
// fields the game queries by; the full record lives in a JSONB column.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Load returns the player named name, matched case-insensitively.
//
// Postcondition: Returns the record or storage.ErrPlayerNotFound.
func (r *PlayerRepository) Load(ctx context.Context, name string) (*storage.PlayerRecord, error) {
	return r.loadOne(ctx, `SELECT id, data FROM players WHERE LOWER(name) = LOWER($1)`, name)
}

// LoadByID returns the player with the given idnum.
//
// Postcondition: Returns the record or storage.ErrPlayerNotFound.
func (r *PlayerRepository) LoadByID(ctx context.Context, idnum int64) (*storage.PlayerRecord, error) {
	return r.loadOne(ctx, `SELECT id, data FROM players WHERE id = $1`, idnum)
}

func (r *PlayerRepository) loadOne(ctx context.Context, query string, arg any) (*storage.PlayerRecord, error) {
	var (
		id  int64
		rec storage.PlayerRecord
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&id, &rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}
	rec.IDNum = id
	return &rec, nil
}

// Save inserts rec when it has no idnum yet, otherwise updates it.
//
// Precondition: rec.Name must be non-empty.
// Postcondition: rec.IDNum is set. Returns storage.ErrPlayerExists when a
// new record collides with an existing name, or storage.ErrPlayerNotFound
// when an update matches no row.
func (r *PlayerRepository) Save(ctx context.Context, rec *storage.PlayerRecord) error {
	if rec.IDNum == 0 {
		var id int64
		err := r.db.QueryRow(ctx, `
			INSERT INTO players (name, password_hash, level, plr_flags, last_logon, data)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			rec.Name, rec.Password, rec.Level, int64(rec.PlrFlags), rec.LastLogon, rec,
		).Scan(&id)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrPlayerExists
			}
			return fmt.Errorf("inserting player: %w", err)
		}
		rec.IDNum = id
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE players
		SET name = $2, password_hash = $3, level = $4, plr_flags = $5,
		    last_logon = $6, data = $7, updated_at = NOW()
		WHERE id = $1`,
		rec.IDNum, rec.Name, rec.Password, rec.Level, int64(rec.PlrFlags), rec.LastLogon, rec,
	)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrPlayerNotFound
	}
	return nil
}

// Exists reports whether a player named name is on file.
func (r *PlayerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking player: %w", err)
	}
	return ok, nil
}

// Count returns the number of player records, deleted ones included.
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}

// Delete removes the player and, by cascade, their rent file.
//
// Postcondition: Returns storage.ErrPlayerNotFound when no row matched.
func (r *PlayerRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrPlayerNotFound
	}
	return nil
}

// List returns the player index ordered by idnum.
func (r *PlayerRepository) List(ctx context.Context) ([]storage.PlayerSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, level, last_logon, plr_flags FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var out []storage.PlayerSummary
	for rows.Next() {
		var (
			s     storage.PlayerSummary
			flags int64
		)
		if err := rows.Scan(&s.IDNum, &s.Name, &s.Level, &s.LastLogon, &flags); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		s.Deleted = (&storage.PlayerRecord{PlrFlags: uint64(flags)}).Deleted()
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetLevel changes a player's level in both the indexed column and the
// saved record.
//
// Precondition: level must be between 0 and the implementor level.
// Postcondition: Returns storage.ErrPlayerNotFound when no row matched.
func (r *PlayerRepository) SetLevel(ctx context.Context, name string, level int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE players
		SET level = $2, data = jsonb_set(data, '{level}', to_jsonb($2::int)), updated_at = NOW()
		WHERE LOWER(name) = LOWER($1)`,
		name, level,
	)
	if err != nil {
		return fmt.Errorf("updating level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrPlayerNotFound
	}
	return nil
}
