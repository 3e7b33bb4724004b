package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"litter-milestones/internal/domain/puppies"
)

type LittersRepo struct {
	db *sql.DB
}

func NewLittersRepo(db *sql.DB) *LittersRepo {
	return &LittersRepo{db: db}
}

func (r *LittersRepo) Create(ctx context.Context, l puppies.Litter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO litters (
			id, name, dam_name, sire_name,
			birth_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		l.ID,
		l.Name,
		l.DamName,
		l.SireName,
		toNullTime(l.BirthDate),
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *LittersRepo) GetByID(ctx context.Context, id string) (puppies.Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return puppies.Litter{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, dam_name, sire_name, birth_at, created_at, updated_at
		FROM litters
		WHERE id = $1
	`, id)

	var l puppies.Litter
	var bd sql.NullTime
	if err := row.Scan(
		&l.ID,
		&l.Name,
		&l.DamName,
		&l.SireName,
		&bd,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puppies.Litter{}, ErrNotFound
		}
		return puppies.Litter{}, err
	}
	l.BirthDate = fromNullTime(bd)
	return l, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
