package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/circlemud/internal/storage"
)

// RentRepository stores the objects a player left the game with.
type RentRepository struct {
	db *pgxpool.Pool
}

// NewRentRepository creates a RentRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewRentRepository(db *pgxpool.Pool) *RentRepository {
	return &RentRepository{db: db}
}

// LoadRent returns the saved objects of player idnum. A player with no
// rent file has nothing saved.
func (r *RentRepository) LoadRent(ctx context.Context, idnum int64) ([]storage.RentItem, error) {
	var items []storage.RentItem
	err := r.db.QueryRow(ctx, `SELECT items FROM rent WHERE player_id = $1`, idnum).Scan(&items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying rent: %w", err)
	}
	return items, nil
}

// SaveRent replaces the rent file of player idnum.
//
// Precondition: idnum must reference an existing player.
func (r *RentRepository) SaveRent(ctx context.Context, idnum int64, items []storage.RentItem) error {
	if items == nil {
		items = []storage.RentItem{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO rent (player_id, items, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_id) DO UPDATE SET items = EXCLUDED.items, saved_at = NOW()`,
		idnum, items,
	)
	if err != nil {
		return fmt.Errorf("saving rent: %w", err)
	}
	return nil
}

// DeleteRent removes the rent file of player idnum, if any.
func (r *RentRepository) DeleteRent(ctx context.Context, idnum int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rent WHERE player_id = $1`, idnum); err != nil {
		return fmt.Errorf("deleting rent: %w", err)
	}
	return nil
}
