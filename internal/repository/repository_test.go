package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// 需要真实的 PostgreSQL，设置 TEST_DATABASE_URL 后运行
func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := New(ctx, url, 2)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	// 迁移可重复执行
	require.NoError(t, db.Migrate(ctx))
	return db
}

func strPtr(s string) *string { return &s }

func TestTripRepository(t *testing.T) {
	db := testDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	var ids []string
	for i, km := range []float64{100, 200, 300} {
		trip := &models.Trip{
			UserID:     userID,
			Mode:       emission.ModeTrain,
			DistanceKm: km,
			Passengers: 1,
			CarbonKg:   km * emission.FactorTrain,
			Method:     emission.MethodStaticTable,
		}
		if i == 0 {
			trip.TripName = strPtr("Weekend")
		}
		require.NoError(t, repo.Create(ctx, trip))
		require.NotEmpty(t, trip.ID)
		assert.False(t, trip.Timestamp.IsZero())
		ids = append(ids, trip.ID)
		// created_at 决定排序
		time.Sleep(5 * time.Millisecond)
	}

	got, err := repo.GetByID(ctx, userID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Weekend", *got.TripName)
	assert.Nil(t, got.Origin)
	assert.Equal(t, emission.ModeTrain, got.Mode)
	assert.Equal(t, emission.VehicleType(""), got.VehicleType)

	_, err = repo.GetByID(ctx, "someone-else", ids[0])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, userID, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, userID, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.ListByUser(ctx, userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	page, err := repo.ListByUser(ctx, userID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	empty, err := repo.ListByUser(ctx, userID, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProfileRepository(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	uid := "user-" + uuid.NewString()

	_, err := repo.Get(ctx, uid)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, uid, models.ProfileUpdate{DisplayName: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrNotFound)

	p := &models.Profile{
		UID:         uid,
		Email:       "ada@example.com",
		DisplayName: "Ada",
		PhotoURL:    strPtr("https://example.com/ada.png"),
		Preferences: models.Preferences{CarbonBudgetKg: 500, PreferredTransport: "bus"}.WithDefaults(),
	}
	require.NoError(t, repo.Upsert(ctx, p))
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.InDelta(t, 500.0, got.Preferences.CarbonBudgetKg, 1e-9)

	// 只更新名字，其余字段保持原值
	updated, err := repo.Update(ctx, uid, models.ProfileUpdate{DisplayName: strPtr("Ada L.")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)
	require.NotNil(t, updated.PhotoURL)
	assert.Equal(t, "https://example.com/ada.png", *updated.PhotoURL)
	assert.Equal(t, "bus", updated.Preferences.PreferredTransport)
	assert.InDelta(t, 500.0, updated.Preferences.CarbonBudgetKg, 1e-9)

	prefs := models.Preferences{CarbonBudgetKg: 2000, PreferredTransport: "train"}.WithDefaults()
	updated, err = repo.Update(ctx, uid, models.ProfileUpdate{Preferences: &prefs})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)
	assert.InDelta(t, 2000.0, updated.Preferences.CarbonBudgetKg, 1e-9)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestFeedbackRepository(t *testing.T) {
	db := testDB(t)
	repo := NewFeedbackRepository(db)

	f := &models.Feedback{Name: "Ada", Email: "ada@example.com", Message: "Lovely travel ideas!"}
	require.NoError(t, repo.Create(context.Background(), f))
	_, err := uuid.Parse(f.ID)
	assert.NoError(t, err)
	assert.False(t, f.CreatedAt.IsZero())
}
