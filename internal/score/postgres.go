package score

import (
	"context"
	"database/sql"
	"errors"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. There is deliberately no
// foreign key to the creations table: the registry lives in another
// service, and orphaned scores are the documented outcome of a
// creation delete.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const scoreColumns = `id, owner_id, creation_id, value, created_at`

func (s *PGStore) Create(ctx context.Context, rec *Score) error {
	_, err := s.db.ExecContext(ctx,
		`insert into scores(id, owner_id, creation_id, value, created_at)
		 values($1,$2,$3,$4,$5)`,
		rec.ID, rec.OwnerID, rec.CreationID, rec.Value, rec.CreatedAt,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Score, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+scoreColumns+` from scores where id=$1`, id)
	var rec Score
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.CreationID, &rec.Value, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *PGStore) List(ctx context.Context) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+scoreColumns+` from scores order by created_at asc`)
	if err != nil {
		return nil, err
	}
	return collectScores(rows)
}

func (s *PGStore) ListByCreation(ctx context.Context, creationID string) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+scoreColumns+` from scores where creation_id=$1 order by created_at asc`, creationID)
	if err != nil {
		return nil, err
	}
	return collectScores(rows)
}

func collectScores(rows *sql.Rows) ([]Score, error) {
	defer rows.Close()
	out := make([]Score, 0)
	for rows.Next() {
		var rec Score
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.CreationID, &rec.Value, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
