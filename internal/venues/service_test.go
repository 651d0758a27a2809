package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn      func(ctx context.Context, venue *Venue) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*Venue, error)
	listFn        func(ctx context.Context) ([]Venue, error)
	listByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]Venue, error)
	updateFn      func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, venue *Venue) error {
	return m.createFn(ctx, venue)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) List(ctx context.Context) ([]Venue, error) {
	return m.listFn(ctx)
}

func (m *mockRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Venue, error) {
	return m.listByOwnerFn(ctx, ownerID)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.updateFn(ctx, id, updates)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func TestCreate_SetsOwner(t *testing.T) {
	ownerID := uuid.New()
	var created *Venue
	repo := &mockRepository{
		createFn: func(ctx context.Context, venue *Venue) error {
			venue.ID = uuid.New()
			created = venue
			return nil
		},
	}
	svc := NewService(repo, nil)

	venue, err := svc.Create(context.Background(), ownerID, &CreateVenueRequest{
		Name:           "Cafe Aroma",
		Location:       "Manama",
		MaxCapacity:    30,
		AvgServiceTime: 15,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ownerID, venue.OwnerID)
	assert.Equal(t, "Cafe Aroma", venue.Name)
	assert.Equal(t, 15, venue.AvgServiceTime)
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Venue, error) {
			return nil, ErrVenueNotFound
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpdate_RejectsNonOwner(t *testing.T) {
	venueID := uuid.New()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Venue, error) {
			return &Venue{ID: venueID, OwnerID: uuid.New()}, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
			t.Fatal("update should not be reached")
			return nil
		},
	}
	svc := NewService(repo, nil)

	name := "New Name"
	_, err := svc.Update(context.Background(), venueID, uuid.New(), &UpdateVenueRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdate_OnlyChangedFields(t *testing.T) {
	venueID := uuid.New()
	ownerID := uuid.New()
	var applied map[string]interface{}
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Venue, error) {
			return &Venue{ID: venueID, OwnerID: ownerID, Name: "Tea House", AvgServiceTime: 10}, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
			applied = updates
			return nil
		},
	}
	svc := NewService(repo, nil)

	avg := 12
	_, err := svc.Update(context.Background(), venueID, ownerID, &UpdateVenueRequest{AvgServiceTime: &avg})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"avg_service_time": 12}, applied)
}

func TestDelete_RejectsNonOwner(t *testing.T) {
	venueID := uuid.New()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Venue, error) {
			return &Venue{ID: venueID, OwnerID: uuid.New()}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("delete should not be reached")
			return nil
		},
	}
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), venueID, uuid.New())
	assert.ErrorIs(t, err, ErrNotOwner)
}
