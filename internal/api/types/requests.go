package types

import (
	"strings"

	"github.com/ev-charging/api/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=72"`
	Name     string `json:"name" validate:"required"`
}

// Normalize trims the free-text fields before validation.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90" example:"52.52"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180" example:"13.405"`
	Address   string   `json:"address" validate:"required" example:"Alexanderplatz 1, Berlin"`
}

// CreateStationRequest is the body of POST /api/stations. Any createdBy in
// the body is ignored.
type CreateStationRequest struct {
	Name          string               `json:"name" validate:"required" example:"Alex Fast Charge"`
	Location      LocationInput        `json:"location"`
	PowerOutput   *float64             `json:"powerOutput" validate:"required,gte=0" example:"150"`
	ConnectorType models.ConnectorType `json:"connectorType" validate:"required,connector_type" example:"CCS"`
	Status        models.StationStatus `json:"status,omitempty" validate:"omitempty,station_status" example:"Available"`
}

func (r *CreateStationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location.Address = strings.TrimSpace(r.Location.Address)
}

// ToStation converts a validated request into a station record.
func (r *CreateStationRequest) ToStation() models.Station {
	return models.Station{
		Name: r.Name,
		Location: models.Location{
			Latitude:  deref(r.Location.Latitude),
			Longitude: deref(r.Location.Longitude),
			Address:   r.Location.Address,
		},
		PowerOutput:   deref(r.PowerOutput),
		ConnectorType: r.ConnectorType,
		Status:        r.Status,
	}
}

type LocationPatchInput struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitnil,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitnil,gte=-180,lte=180"`
	Address   *string  `json:"address,omitempty" validate:"omitnil,min=1"`
}

// UpdateStationRequest is the body of PUT /api/stations/{id}. Absent fields
// are left unchanged; createdBy cannot be changed.
type UpdateStationRequest struct {
	Name          *string               `json:"name,omitempty" validate:"omitnil,min=1"`
	Location      *LocationPatchInput   `json:"location,omitempty"`
	PowerOutput   *float64              `json:"powerOutput,omitempty" validate:"omitnil,gte=0"`
	ConnectorType *models.ConnectorType `json:"connectorType,omitempty" validate:"omitnil,connector_type"`
	Status        *models.StationStatus `json:"status,omitempty" validate:"omitnil,station_status"`
}

func (r *UpdateStationRequest) Normalize() {
	r.Name = trimPtr(r.Name)
	if r.Location != nil {
		r.Location.Address = trimPtr(r.Location.Address)
	}
}

// ToPatch converts a validated request into a station patch.
func (r *UpdateStationRequest) ToPatch() models.StationPatch {
	p := models.StationPatch{
		Name:          r.Name,
		PowerOutput:   r.PowerOutput,
		ConnectorType: r.ConnectorType,
		Status:        r.Status,
	}
	if l := r.Location; l != nil {
		p.Location = &models.LocationPatch{Latitude: l.Latitude, Longitude: l.Longitude, Address: l.Address}
	}
	return p
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
