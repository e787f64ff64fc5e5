package creation

import (
	"context"
	"database/sql"
	"errors"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const creationColumns = `id, owner_id, title, description, image_key, image_url, version, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, c *Creation) error {
	_, err := s.db.ExecContext(ctx,
		`insert into creations(id, owner_id, title, description, image_key, image_url, version, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.OwnerID, c.Title, c.Description, c.ImageKey, c.ImageURL, c.Version, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Creation, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+creationColumns+` from creations where id=$1`, id)
	var c Creation
	if err := scanCreation(row.Scan, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PGStore) List(ctx context.Context) ([]Creation, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+creationColumns+` from creations order by created_at asc`)
	if err != nil {
		return nil, err
	}
	return collectCreations(rows)
}

// Update writes the record read at c.Version; a concurrent writer that
// bumped the version first wins and the caller observes ErrConflict.
func (s *PGStore) Update(ctx context.Context, c *Creation) error {
	res, err := s.db.ExecContext(ctx,
		`update creations
		 set owner_id=$3, title=$4, description=$5, image_key=$6, image_url=$7, version=version+1, updated_at=$8
		 where id=$1 and version=$2`,
		c.ID, c.Version, c.OwnerID, c.Title, c.Description, c.ImageKey, c.ImageURL, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`select exists(select 1 from creations where id=$1)`, c.ID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from creations where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search matches case-insensitively; ILIKE keeps Postgres in line
// with the in-memory store.
func (s *PGStore) Search(ctx context.Context, term string) ([]Creation, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+creationColumns+` from creations
		 where title ilike '%'||$1||'%' or description ilike '%'||$1||'%'
		 order by created_at asc`, term)
	if err != nil {
		return nil, err
	}
	return collectCreations(rows)
}

func scanCreation(scan func(...any) error, c *Creation) error {
	return scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.ImageKey, &c.ImageURL, &c.Version, &c.CreatedAt, &c.UpdatedAt)
}

func collectCreations(rows *sql.Rows) ([]Creation, error) {
	defer rows.Close()
	out := make([]Creation, 0)
	for rows.Next() {
		var c Creation
		if err := scanCreation(rows.Scan, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
