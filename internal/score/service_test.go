package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yonajim/NPUPlatform/internal/creation"
)

// fakeRegistry simulates the creation registry with a fixed set of
// known ids and a switchable outage.
type fakeRegistry struct {
	known map[string]bool
	down  bool
	calls int
}

func newFakeRegistry(ids ...string) *fakeRegistry {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &fakeRegistry{known: known}
}

func (f *fakeRegistry) Exists(_ context.Context, id string) error {
	f.calls++
	if f.down {
		return creation.ErrUnavailable
	}
	if !f.known[id] {
		return creation.ErrNotFound
	}
	return nil
}

func TestPostRequiresExistingCreation(t *testing.T) {
	store := NewInMemory()
	svc := NewService(store, newFakeRegistry())

	_, err := svc.Post(context.Background(), NewScore{OwnerID: "o1", CreationID: "ghost", Value: 7})
	assert.ErrorIs(t, err, ErrCreationNotFound)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "a rejected post must not grow the ledger")
}

func TestPostPersistsOneRetrievableRecord(t *testing.T) {
	store := NewInMemory()
	svc := NewService(store, newFakeRegistry("c1"))
	ctx := context.Background()

	rec, err := svc.Post(ctx, NewScore{OwnerID: "o1", CreationID: "c1", Value: 9})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Value)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostRegistryOutageIsNotAbsence(t *testing.T) {
	store := NewInMemory()
	reg := newFakeRegistry("c1")
	reg.down = true
	svc := NewService(store, reg)

	_, err := svc.Post(context.Background(), NewScore{OwnerID: "o1", CreationID: "c1", Value: 5})
	assert.ErrorIs(t, err, creation.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrCreationNotFound)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPostValidation(t *testing.T) {
	svc := NewService(NewInMemory(), newFakeRegistry("c1"))
	ctx := context.Background()

	cases := []struct {
		name string
		in   NewScore
	}{
		{"missing owner", NewScore{CreationID: "c1", Value: 1}},
		{"missing creation id", NewScore{OwnerID: "o1", Value: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Post(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetSkipsRegistry(t *testing.T) {
	store := NewInMemory()
	reg := newFakeRegistry("c1")
	svc := NewService(store, reg)
	ctx := context.Background()

	rec, err := svc.Post(ctx, NewScore{OwnerID: "o1", CreationID: "c1", Value: 3})
	require.NoError(t, err)

	// The creation disappears; its score must stay retrievable.
	delete(reg.known, "c1")
	before := reg.calls

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, before, reg.calls, "a single-score read must not touch the registry")
}

func TestListForCreationRevalidates(t *testing.T) {
	store := NewInMemory()
	reg := newFakeRegistry("c1", "c2")
	svc := NewService(store, reg)
	ctx := context.Background()

	_, err := svc.Post(ctx, NewScore{OwnerID: "o1", CreationID: "c1", Value: 3})
	require.NoError(t, err)

	// A creation with no scores yet answers with an empty list.
	out, err := svc.ListForCreation(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, out)

	// A deleted creation answers not-found even though its scores
	// still sit in the ledger.
	delete(reg.known, "c1")
	_, err = svc.ListForCreation(ctx, "c1")
	assert.ErrorIs(t, err, ErrCreationNotFound)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "orphaned scores are kept")
}

func TestListForCreationOutage(t *testing.T) {
	reg := newFakeRegistry("c1")
	svc := NewService(NewInMemory(), reg)

	reg.down = true
	_, err := svc.ListForCreation(context.Background(), "c1")
	assert.ErrorIs(t, err, creation.ErrUnavailable)
}
