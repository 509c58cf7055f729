package repository

import (
	"context"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/validators"
	appErr "github.com/ev-charging/api/pkg/errors"
	"gorm.io/gorm"
)

// StationNotFound is the message of every station not-found error.
const StationNotFound = "Charging station not found"

// StationRepository is the station store. Create and Update validate the
// record they are about to write.
type StationRepository interface {
	Create(ctx context.Context, s *models.Station) error
	GetByID(ctx context.Context, id string, dest *models.Station) error
	// List returns the matching stations, newest first.
	List(ctx context.Context, f models.StationFilter) ([]models.Station, error)
	// Update writes only the patched fields and returns the merged record.
	Update(ctx context.Context, id string, patch models.StationPatch) (*models.Station, error)
	Delete(ctx context.Context, id string) error
}

type stationRepository struct {
	BaseRepository[models.Station]
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{BaseRepository: NewBaseRepository[models.Station](db, StationNotFound), db: db}
}

func (r *stationRepository) Create(ctx context.Context, s *models.Station) error {
	if err := validators.Struct(s); err != nil {
		return err
	}
	return r.BaseRepository.Create(ctx, s)
}

func (r *stationRepository) List(ctx context.Context, f models.StationFilter) ([]models.Station, error) {
	var out []models.Station
	err := r.db.WithContext(ctx).
		Scopes(stationFilter(f)).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list stations failed")
	}
	return out, nil
}

func (r *stationRepository) Update(ctx context.Context, id string, patch models.StationPatch) (*models.Station, error) {
	var s models.Station
	if err := r.GetByID(ctx, id, &s); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return &s, nil
	}
	patch.Apply(&s)
	if err := validators.Struct(&s); err != nil {
		return nil, err
	}

	cols := patchColumns(patch)
	cols["updated_at"] = r.db.NowFunc()
	res := r.db.WithContext(ctx).Model(&models.Station{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, appErr.Wrap(res.Error, appErr.CodeInternal, "update station failed")
	}
	if res.RowsAffected == 0 {
		return nil, appErr.New(appErr.CodeNotFound, StationNotFound)
	}

	var out models.Station
	if err := r.GetByID(ctx, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func stationFilter(f models.StationFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.ConnectorType != "" {
			db = db.Where("connector_type = ?", f.ConnectorType)
		}
		switch {
		case f.MinPower != nil && f.MaxPower != nil:
			db = db.Where("power_output BETWEEN ? AND ?", *f.MinPower, *f.MaxPower)
		case f.MinPower != nil:
			db = db.Where("power_output >= ?", *f.MinPower)
		case f.MaxPower != nil:
			db = db.Where("power_output <= ?", *f.MaxPower)
		}
		return db
	}
}

// patchColumns maps the supplied patch fields to column assignments.
func patchColumns(p models.StationPatch) map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if l := p.Location; l != nil {
		if l.Latitude != nil {
			cols["location_latitude"] = *l.Latitude
		}
		if l.Longitude != nil {
			cols["location_longitude"] = *l.Longitude
		}
		if l.Address != nil {
			cols["location_address"] = *l.Address
		}
	}
	if p.PowerOutput != nil {
		cols["power_output"] = *p.PowerOutput
	}
	if p.ConnectorType != nil {
		cols["connector_type"] = string(*p.ConnectorType)
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}
