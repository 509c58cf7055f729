// Package repotest holds the behaviour every store backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/repository"
	appErr "github.com/ev-charging/api/pkg/errors"
)

// Harness is one freshly emptied store.
type Harness struct {
	Users    repository.UserRepository
	Stations repository.StationRepository
	// NewID returns a well-formed id that belongs to no record.
	NewID func() string
}

func ptr[T any](v T) *T { return &v }

// Station returns a valid station owned by createdBy.
func Station(name, createdBy string, power float64, ct models.ConnectorType, st models.StationStatus) *models.Station {
	return &models.Station{
		Name:          name,
		Location:      models.Location{Latitude: 48.85, Longitude: 2.35, Address: name + " street"},
		PowerOutput:   power,
		ConnectorType: ct,
		Status:        st,
		CreatedBy:     createdBy,
	}
}

// Run exercises the user and station repositories returned by setup.
func Run(t *testing.T, setup func(t *testing.T) Harness) {
	t.Run("UserCreateAndLookup", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		u := &models.User{Email: "ada@example.com", Name: "Ada", PasswordHash: "hash"}
		require.NoError(t, h.Users.Create(ctx, u))
		require.NotEmpty(t, u.ID)

		var byEmail, byID models.User
		require.NoError(t, h.Users.GetByEmail(ctx, "ada@example.com", &byEmail))
		require.NoError(t, h.Users.GetByID(ctx, u.ID, &byID))
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, "hash", byID.PasswordHash)
		assert.Equal(t, "Ada", byID.Name)
	})

	t.Run("UserDuplicateEmail", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		require.NoError(t, h.Users.Create(ctx, &models.User{Email: "dup@example.com", Name: "A", PasswordHash: "x"}))
		err := h.Users.Create(ctx, &models.User{Email: "dup@example.com", Name: "B", PasswordHash: "y"})
		assert.True(t, appErr.IsCode(err, appErr.CodeConflict), "got %v", err)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		var u models.User
		assert.True(t, appErr.IsCode(h.Users.GetByEmail(ctx, "nobody@example.com", &u), appErr.CodeNotFound))
		assert.True(t, appErr.IsCode(h.Users.GetByID(ctx, h.NewID(), &u), appErr.CodeNotFound))
		assert.True(t, appErr.IsCode(h.Users.GetByID(ctx, "not-an-id", &u), appErr.CodeNotFound))
	})

	t.Run("UserSummariesSkipUnknown", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		u := &models.User{Email: "grace@example.com", Name: "Grace", PasswordHash: "x"}
		require.NoError(t, h.Users.Create(ctx, u))

		got, err := h.Users.Summaries(ctx, []string{u.ID, h.NewID(), "garbage"})
		require.NoError(t, err)
		assert.Equal(t, map[string]models.UserSummary{
			u.ID: {ID: u.ID, Name: "Grace", Email: "grace@example.com"},
		}, got)

		empty, err := h.Users.Summaries(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("StationCreateThenGet", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		creator := h.NewID()
		in := Station("Depot", creator, 50, models.ConnectorCCS, models.StatusAvailable)
		require.NoError(t, h.Stations.Create(ctx, in))
		require.NotEmpty(t, in.ID)

		var got models.Station
		require.NoError(t, h.Stations.GetByID(ctx, in.ID, &got))
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Location, got.Location)
		assert.Equal(t, in.PowerOutput, got.PowerOutput)
		assert.Equal(t, in.ConnectorType, got.ConnectorType)
		assert.Equal(t, in.Status, got.Status)
		assert.Equal(t, creator, got.CreatedBy)
		assert.False(t, got.CreatedAt.IsZero())
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("StationCreateRejectsInvalid", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		bad := Station("Depot", h.NewID(), 50, models.ConnectorCCS, models.StatusAvailable)
		bad.Location.Latitude = 95
		err := h.Stations.Create(ctx, bad)
		assert.True(t, appErr.IsCode(err, appErr.CodeInvalid), "got %v", err)

		all, err := h.Stations.List(ctx, models.StationFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("StationGetMissing", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		var s models.Station
		err := h.Stations.GetByID(ctx, h.NewID(), &s)
		assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		ae, _ := appErr.As(err)
		assert.Equal(t, repository.StationNotFound, ae.Message)
		assert.True(t, appErr.IsCode(h.Stations.GetByID(ctx, "not-an-id", &s), appErr.CodeNotFound))
	})

	t.Run("StationListFiltersAndOrder", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		u1, u2 := h.NewID(), h.NewID()
		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		seed := []*models.Station{
			Station("p22", u1, 22, models.ConnectorType2, models.StatusAvailable),
			Station("p50", u1, 50, models.ConnectorCCS, models.StatusOccupied),
			Station("p75", u2, 75, models.ConnectorCCS, models.StatusAvailable),
			Station("p100", u2, 100, models.ConnectorCHAdeMO, models.StatusAvailable),
			Station("p150", u1, 150, models.ConnectorCCS, models.StatusAvailable),
		}
		for i, s := range seed {
			s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, h.Stations.Create(ctx, s))
		}

		names := func(f models.StationFilter) []string {
			t.Helper()
			list, err := h.Stations.List(ctx, f)
			require.NoError(t, err)
			out := make([]string, len(list))
			for i := range list {
				out[i] = list[i].Name
			}
			return out
		}

		assert.Equal(t, []string{"p150", "p100", "p75", "p50", "p22"}, names(models.StationFilter{}))
		assert.Equal(t, []string{"p100", "p75", "p50"}, names(models.StationFilter{MinPower: ptr(50.0), MaxPower: ptr(100.0)}))
		assert.Equal(t, []string{"p150", "p100"}, names(models.StationFilter{MinPower: ptr(100.0)}))
		assert.Equal(t, []string{"p50", "p22"}, names(models.StationFilter{MaxPower: ptr(50.0)}))
		assert.Equal(t, []string{"p150", "p75"}, names(models.StationFilter{
			Status: models.StatusAvailable, ConnectorType: models.ConnectorCCS,
		}))
		assert.Equal(t, []string{"p75"}, names(models.StationFilter{
			Status: models.StatusAvailable, ConnectorType: models.ConnectorCCS, MaxPower: ptr(100.0),
		}))
		assert.Empty(t, names(models.StationFilter{Status: "Broken"}))
	})

	t.Run("StationUpdateSingleField", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		s := Station("Depot", h.NewID(), 50, models.ConnectorCCS, models.StatusAvailable)
		require.NoError(t, h.Stations.Create(ctx, s))
		var before models.Station
		require.NoError(t, h.Stations.GetByID(ctx, s.ID, &before))

		got, err := h.Stations.Update(ctx, s.ID, models.StationPatch{
			Location: &models.LocationPatch{Latitude: ptr(-12.5)},
		})
		require.NoError(t, err)

		want := before
		want.Location.Latitude = -12.5
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Location, got.Location)
		assert.Equal(t, want.PowerOutput, got.PowerOutput)
		assert.Equal(t, want.ConnectorType, got.ConnectorType)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.CreatedBy, got.CreatedBy)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		assert.False(t, got.UpdatedAt.Before(before.UpdatedAt))

		var reread models.Station
		require.NoError(t, h.Stations.GetByID(ctx, s.ID, &reread))
		assert.Equal(t, -12.5, reread.Location.Latitude)
		assert.Equal(t, before.Location.Address, reread.Location.Address)
	})

	t.Run("StationUpdateRejectsInvalid", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		s := Station("Depot", h.NewID(), 50, models.ConnectorCCS, models.StatusAvailable)
		require.NoError(t, h.Stations.Create(ctx, s))

		_, err := h.Stations.Update(ctx, s.ID, models.StationPatch{
			Name:   ptr("Renamed"),
			Status: ptr(models.StationStatus("Broken")),
		})
		assert.True(t, appErr.IsCode(err, appErr.CodeInvalid), "got %v", err)

		var after models.Station
		require.NoError(t, h.Stations.GetByID(ctx, s.ID, &after))
		assert.Equal(t, "Depot", after.Name)
		assert.Equal(t, models.StatusAvailable, after.Status)
	})

	t.Run("StationUpdateMissing", func(t *testing.T) {
		h := setup(t)
		_, err := h.Stations.Update(context.Background(), h.NewID(), models.StationPatch{Name: ptr("x")})
		assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	})

	t.Run("StationDelete", func(t *testing.T) {
		h := setup(t)
		ctx := context.Background()

		s := Station("Depot", h.NewID(), 50, models.ConnectorCCS, models.StatusAvailable)
		require.NoError(t, h.Stations.Create(ctx, s))
		require.NoError(t, h.Stations.Delete(ctx, s.ID))

		var gone models.Station
		assert.True(t, appErr.IsCode(h.Stations.GetByID(ctx, s.ID, &gone), appErr.CodeNotFound))
		assert.True(t, appErr.IsCode(h.Stations.Delete(ctx, s.ID), appErr.CodeNotFound))
		assert.True(t, appErr.IsCode(h.Stations.Delete(ctx, "not-an-id"), appErr.CodeNotFound))
	})
}
