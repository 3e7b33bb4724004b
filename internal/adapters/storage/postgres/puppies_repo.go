package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"litter-milestones/internal/domain/puppies"
)

type PuppiesRepo struct {
	db *sql.DB
}

func NewPuppiesRepo(db *sql.DB) *PuppiesRepo {
	return &PuppiesRepo{db: db}
}

const puppyColumns = `id, litter_id, name, sex, color, birth_weight, created_at, updated_at`

func (r *PuppiesRepo) Create(ctx context.Context, p puppies.Puppy) error {
	var bw sql.NullFloat64
	if p.BirthWeight != nil {
		bw = sql.NullFloat64{Float64: *p.BirthWeight, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO puppies (`+puppyColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.LitterID,
		p.Name,
		string(p.Sex),
		p.Color,
		bw,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PuppiesRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return puppies.Puppy{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+puppyColumns+` FROM puppies WHERE id = $1`, id)
	p, err := scanPuppy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puppies.Puppy{}, ErrNotFound
		}
		return puppies.Puppy{}, err
	}
	return p, nil
}

func (r *PuppiesRepo) ListByLitter(ctx context.Context, litterID string) ([]puppies.Puppy, error) {
	litterID = strings.TrimSpace(litterID)
	if litterID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+puppyColumns+`
		FROM puppies
		WHERE litter_id = $1
		ORDER BY created_at ASC, id ASC
	`, litterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]puppies.Puppy, 0)
	for rows.Next() {
		p, err := scanPuppy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPuppy(s scanner) (puppies.Puppy, error) {
	var p puppies.Puppy
	var sex string
	var bw sql.NullFloat64
	if err := s.Scan(
		&p.ID,
		&p.LitterID,
		&p.Name,
		&sex,
		&p.Color,
		&bw,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return puppies.Puppy{}, err
	}
	p.Sex = puppies.Sex(sex)
	if bw.Valid {
		v := bw.Float64
		p.BirthWeight = &v
	}
	return p, nil
}
