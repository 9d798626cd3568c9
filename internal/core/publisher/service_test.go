// Copyright (c) 2026 Shelfmark. All rights reserved.

package publisher_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/core/publisher"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

// fakeRepository records calls and returns canned rows.
type fakeRepository struct {
	created *publisher.Publisher
	updated *publisher.Publisher
	rows    []*publisher.Publisher
}

func (f *fakeRepository) ListPublishers(_ context.Context, _ uuid.UUID, _ *query.Plan) ([]*publisher.Publisher, int, error) {
	return f.rows, len(f.rows), nil
}

func (f *fakeRepository) TrashedPublishers(_ context.Context, _ uuid.UUID) ([]*publisher.Publisher, error) {
	return f.rows, nil
}

func (f *fakeRepository) GetPublisher(_ context.Context, _ uuid.UUID, id int64) (*publisher.Publisher, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreatePublisher(_ context.Context, _ uuid.UUID, p *publisher.Publisher) error {
	p.ID = 1
	f.created = p
	return nil
}

func (f *fakeRepository) UpdatePublisher(_ context.Context, _ uuid.UUID, p *publisher.Publisher) error {
	f.updated = p
	return nil
}

// fakeResolverStore serves the resolver without a database.
type fakeResolverStore struct {
	keysByID map[int64]string
	idsByKey map[string][]int64
}

func (f *fakeResolverStore) KeyByID(_ context.Context, _ resolve.Target, _ uuid.UUID, id int64, _ bool) (*string, error) {
	key, ok := f.keysByID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &key, nil
}

func (f *fakeResolverStore) IDsByKey(_ context.Context, _ resolve.Target, _ uuid.UUID, value string, _ bool) ([]int64, error) {
	return f.idsByKey[value], nil
}

func newService(repo *fakeRepository, store *fakeResolverStore) *publisher.Service {
	return publisher.NewService(repo, nil, resolve.New(store), slog.Default())
}

/*
TestCreatePublisher_Validation checks that invalid input never reaches the
repository and that the validation error names the offending field.
*/
func TestCreatePublisher_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     publisher.Publisher
		wantField string
	}{
		{"missing_name", publisher.Publisher{}, "name"},
		{"bad_website", publisher.Publisher{Name: "Tor", Website: pointer.To("not a url")}, "website"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := newService(repo, &fakeResolverStore{})

			err := service.CreatePublisher(context.Background(), uuid.New(), &tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreatePublisher_PersistsValidInput(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo, &fakeResolverStore{})

	input := publisher.Publisher{Name: "Ace Books", City: pointer.To("New York")}
	err := service.CreatePublisher(context.Background(), uuid.New(), &input)

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(1), input.ID)
	assert.Equal(t, "Ace Books", repo.created.Name)
}

func TestUpdatePublisher_SetsIDFromPath(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo, &fakeResolverStore{})

	input := publisher.Publisher{Name: "Orbit"}
	err := service.UpdatePublisher(context.Background(), uuid.New(), 42, &input)

	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, int64(42), repo.updated.ID)
}

/*
TestResolvePublisher covers the four resolver outcomes surfaced by the
service: a single match, no match, contradictory attributes, and an
ambiguous name.
*/
func TestResolvePublisher(t *testing.T) {
	store := &fakeResolverStore{
		keysByID: map[int64]string{7: "Ace Books"},
		idsByKey: map[string][]int64{
			"Ace Books": {7},
			"Penguin":   {3, 9},
		},
	}
	service := newService(&fakeRepository{}, store)
	owner := uuid.New()

	t.Run("id_and_name_agree", func(t *testing.T) {
		id, err := service.ResolvePublisher(context.Background(), owner, pointer.To(int64(7)), pointer.To("ace books"), false)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, int64(7), *id)
	})

	t.Run("name_unknown", func(t *testing.T) {
		id, err := service.ResolvePublisher(context.Background(), owner, nil, pointer.To("Nonesuch"), false)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("id_and_name_disagree", func(t *testing.T) {
		_, err := service.ResolvePublisher(context.Background(), owner, pointer.To(int64(7)), pointer.To("Penguin"), false)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "MISMATCH", ae.Code)
	})

	t.Run("name_ambiguous", func(t *testing.T) {
		_, err := service.ResolvePublisher(context.Background(), owner, nil, pointer.To("Penguin"), false)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "MULTIPLE_MATCHES", ae.Code)
	})
}
