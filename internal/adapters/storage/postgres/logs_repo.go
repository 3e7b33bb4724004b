package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"

	"github.com/google/uuid"
)

// LogsRepo guarda cada log de protocolo como un documento JSONB por (puppy, protocolo).
// Save reemplaza el documento completo: last-write-wins.
type LogsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewLogsRepo(db *sql.DB) *LogsRepo {
	return &LogsRepo{db: db, now: time.Now}
}

func (r *LogsRepo) GetProtocolLog(ctx context.Context, puppyID string, t protocols.Type) (protocols.Log, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT data FROM protocol_logs WHERE puppy_id = $1 AND protocol = $2
	`, puppyID, string(t)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return protocols.NewLog(t), nil
	}
	if err != nil {
		return protocols.Log{}, err
	}
	return decodeLog(t, raw)
}

func (r *LogsRepo) SaveProtocolLog(ctx context.Context, puppyID string, l protocols.Log) error {
	raw, err := encodeLog(l)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO protocol_logs (puppy_id, protocol, data, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (puppy_id, protocol)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, puppyID, string(l.Type), raw, r.now().UTC())
	return err
}

func (r *LogsRepo) ListWeights(ctx context.Context, puppyID string) ([]growth.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT weight, measured_at
		FROM weight_entries
		WHERE puppy_id = $1
		ORDER BY recorded_at ASC, id ASC
	`, puppyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]growth.Entry, 0)
	for rows.Next() {
		var e growth.Entry
		if err := rows.Scan(&e.Weight, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *LogsRepo) AppendWeight(ctx context.Context, puppyID string, e growth.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weight_entries (id, puppy_id, weight, measured_at, recorded_at)
		VALUES ($1,$2,$3,$4,$5)
	`, uuid.NewString(), puppyID, e.Weight, e.Date, r.now().UTC())
	return err
}

func encodeLog(l protocols.Log) ([]byte, error) {
	if _, ok := protocols.PolicyFor(l.Type); !ok {
		return nil, protocols.ErrUnknownProtocol
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode protocol log: %w", err)
	}
	return b, nil
}

// decodeLog normaliza el documento: el tipo lo manda la columna, y los mapas nil
// se inicializan como en NewLog.
func decodeLog(t protocols.Type, raw []byte) (protocols.Log, error) {
	var l protocols.Log
	if err := json.Unmarshal(raw, &l); err != nil {
		return protocols.Log{}, fmt.Errorf("decode protocol log: %w", err)
	}

	base := protocols.NewLog(t)
	if l.Exercises != nil {
		base.Exercises = l.Exercises
	}
	if l.Scents != nil {
		base.Scents = l.Scents
	}
	if l.Items != nil {
		base.Items = l.Items
	}
	return base, nil
}
