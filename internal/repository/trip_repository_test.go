package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mira/internal/model"
)

func TestTripRepository_CreateDefaultsAndOwnership(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTripRepository(gdb)
	ctx := context.Background()
	owner := createUser(t, gdb, "owner@example.com")
	stranger := createUser(t, gdb, "stranger@example.com")

	budget := decimal.NewFromInt(1500)
	trip := &model.Trip{
		UserID:         owner.ID,
		Title:          "Rome",
		Destination:    "Rome, Italy",
		TravelersCount: 1,
		Budget:         &budget,
		Status:         model.TripStatusDraft,
	}
	require.NoError(t, repo.Create(ctx, trip))
	assert.NotZero(t, trip.ID)

	found, err := repo.FindByIDForUser(ctx, trip.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", found.Title)
	assert.Equal(t, uint(1), found.TravelersCount)
	assert.Equal(t, model.TripStatusDraft, found.Status)
	assert.Nil(t, found.StartDate)
	require.NotNil(t, found.Budget)
	assert.True(t, budget.Equal(*found.Budget))

	_, err = repo.FindByIDForUser(ctx, trip.ID, stranger.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTripRepository_ListByUser(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTripRepository(gdb)
	ctx := context.Background()
	alice := createUser(t, gdb, "alice@example.com")
	bob := createUser(t, gdb, "bob@example.com")

	for _, title := range []string{"Paris", "Oslo"} {
		require.NoError(t, repo.Create(ctx, &model.Trip{UserID: alice.ID, Title: title, Destination: title, TravelersCount: 1, Status: model.TripStatusDraft}))
	}
	require.NoError(t, repo.Create(ctx, &model.Trip{UserID: bob.ID, Title: "Lima", Destination: "Lima", TravelersCount: 2, Status: model.TripStatusPlanning}))

	trips, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Paris", trips[0].Title)
	assert.Equal(t, "Oslo", trips[1].Title)

	none, err := repo.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTripMessageRepository_ListRecent(t *testing.T) {
	gdb := newTestDB(t)
	trips := NewTripRepository(gdb)
	repo := NewTripMessageRepository(gdb)
	ctx := context.Background()
	owner := createUser(t, gdb, "owner@example.com")

	trip := &model.Trip{UserID: owner.ID, Title: "T", Destination: "D", TravelersCount: 1, Status: model.TripStatusDraft}
	require.NoError(t, trips.Create(ctx, trip))

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	contents := []string{"m1", "m2", "m3", "m4", "m5", "m6"}
	for i, c := range contents {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		require.NoError(t, repo.Create(ctx, &model.TripMessage{TripID: trip.ID, Role: role, Content: c, CreatedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	recent, err := repo.ListRecent(ctx, trip.ID, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, "m3", recent[0].Content)
	assert.Equal(t, "m6", recent[3].Content)

	all, err := repo.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "m1", all[0].Content)
}
