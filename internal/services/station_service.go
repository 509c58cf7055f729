package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/repository"
	appErr "github.com/ev-charging/api/pkg/errors"
	"github.com/ev-charging/api/pkg/logger"
)

type StationService interface {
	List(ctx context.Context, f models.StationFilter) ([]models.StationWithCreator, error)
	Get(ctx context.Context, id string) (*models.StationWithCreator, error)
	// Create stores s as created by userID; any CreatedBy, ID or timestamps on s are ignored.
	Create(ctx context.Context, userID string, s models.Station) (*models.StationWithCreator, error)
	Update(ctx context.Context, userID, id string, patch models.StationPatch) (*models.StationWithCreator, error)
	Delete(ctx context.Context, userID, id string) error
}

type stationService struct {
	stations repository.StationRepository
	users    repository.UserRepository
	// enforceOwnership limits update and delete to the creating user.
	enforceOwnership bool
}

func NewStationService(stations repository.StationRepository, users repository.UserRepository, enforceOwnership bool) StationService {
	return &stationService{stations: stations, users: users, enforceOwnership: enforceOwnership}
}

var _ StationService = (*stationService)(nil)

func (s *stationService) List(ctx context.Context, f models.StationFilter) ([]models.StationWithCreator, error) {
	items, err := s.stations.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items...)
}

func (s *stationService) Get(ctx context.Context, id string) (*models.StationWithCreator, error) {
	var st models.Station
	if err := s.stations.GetByID(ctx, id, &st); err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, st)
}

func (s *stationService) Create(ctx context.Context, userID string, in models.Station) (*models.StationWithCreator, error) {
	st := in
	st.ID = ""
	st.CreatedBy = userID
	st.CreatedAt, st.UpdatedAt = time.Time{}, time.Time{}
	if st.Status == "" {
		st.Status = models.StatusAvailable
	}

	if err := s.stations.Create(ctx, &st); err != nil {
		return nil, err
	}
	logger.L().Info("station created", zap.String("station_id", st.ID), zap.String("user_id", userID))
	return s.enrichOne(ctx, st)
}

func (s *stationService) Update(ctx context.Context, userID, id string, patch models.StationPatch) (*models.StationWithCreator, error) {
	if err := s.authorize(ctx, userID, id); err != nil {
		return nil, err
	}
	st, err := s.stations.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logger.L().Info("station updated", zap.String("station_id", id), zap.String("user_id", userID))
	return s.enrichOne(ctx, *st)
}

func (s *stationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	if err := s.stations.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("station deleted", zap.String("station_id", id), zap.String("user_id", userID))
	return nil
}

// authorize checks that station id exists and, when ownership is enforced,
// that userID created it.
func (s *stationService) authorize(ctx context.Context, userID, id string) error {
	if !s.enforceOwnership {
		return nil
	}
	var st models.Station
	if err := s.stations.GetByID(ctx, id, &st); err != nil {
		return err
	}
	if st.CreatedBy != userID {
		return appErr.New(appErr.CodeForbidden, "Not authorized to modify this charging station").
			WithMeta("station_id", id)
	}
	return nil
}

// enrich joins each station with its creator's public profile in one lookup.
func (s *stationService) enrich(ctx context.Context, items ...models.Station) ([]models.StationWithCreator, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for i := range items {
		if _, ok := seen[items[i].CreatedBy]; !ok {
			seen[items[i].CreatedBy] = struct{}{}
			ids = append(ids, items[i].CreatedBy)
		}
	}
	creators, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.StationWithCreator, len(items))
	for i := range items {
		out[i] = items[i].WithCreator(creators)
	}
	return out, nil
}

func (s *stationService) enrichOne(ctx context.Context, st models.Station) (*models.StationWithCreator, error) {
	out, err := s.enrich(ctx, st)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
