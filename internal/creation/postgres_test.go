package creation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGStoreFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`select ` + creationColumns + ` from creations where id=$1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "title", "description", "image_key", "image_url", "version", "created_at", "updated_at",
		}).AddRow("c1", "o1", "Sky Whale", "clouds", "k.png", "http://img/k.png", int64(1), now, now))

	rec, err := NewPGStore(db).Find(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Sky Whale", rec.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreFindNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`select ` + creationColumns + ` from creations where id=$1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewPGStore(db).Find(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGStoreUpdateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`update creations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`select exists(select 1 from creations where id=$1)`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = NewPGStore(db).Update(context.Background(), &Creation{ID: "c1", Version: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPGStoreUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`update creations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`select exists(select 1 from creations where id=$1)`)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = NewPGStore(db).Update(context.Background(), &Creation{ID: "gone", Version: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGStoreDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`delete from creations where id=$1`)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPGStore(db).Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGStoreSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`ilike`).
		WithArgs("whale").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "title", "description", "image_key", "image_url", "version", "created_at", "updated_at",
		}).AddRow("c1", "o1", "Sky Whale", "clouds", "k.png", "http://img/k.png", int64(1), now, now))

	out, err := NewPGStore(db).Search(context.Background(), "whale")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
}
