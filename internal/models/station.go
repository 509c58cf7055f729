package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectorType is the physical plug standard of a charging point.
type ConnectorType string

const (
	ConnectorType1   ConnectorType = "Type1"
	ConnectorType2   ConnectorType = "Type2"
	ConnectorCCS     ConnectorType = "CCS"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
)

// ConnectorTypes lists every accepted connector type.
var ConnectorTypes = []ConnectorType{ConnectorType1, ConnectorType2, ConnectorCCS, ConnectorCHAdeMO}

// Valid reports whether c is one of ConnectorTypes.
func (c ConnectorType) Valid() bool {
	for _, v := range ConnectorTypes {
		if c == v {
			return true
		}
	}
	return false
}

// StationStatus is the operational state of a charging point. Any status may
// move to any other.
type StationStatus string

const (
	StatusAvailable    StationStatus = "Available"
	StatusOccupied     StationStatus = "Occupied"
	StatusOutOfService StationStatus = "Out of Service"
)

// StationStatuses lists every accepted status.
var StationStatuses = []StationStatus{StatusAvailable, StatusOccupied, StatusOutOfService}

// Valid reports whether s is one of StationStatuses.
func (s StationStatus) Valid() bool {
	for _, v := range StationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Location is where a station physically is.
type Location struct {
	Latitude  float64 `gorm:"not null" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `gorm:"not null" json:"longitude" validate:"gte=-180,lte=180"`
	Address   string  `gorm:"not null" json:"address" validate:"required"`
}

// Station is one physical charging point. CreatedBy holds the id of the user
// who created it and never changes afterwards.
type Station struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string        `gorm:"not null" json:"name" validate:"required"`
	Location      Location      `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	PowerOutput   float64       `gorm:"not null;index" json:"powerOutput" validate:"gte=0"`
	ConnectorType ConnectorType `gorm:"type:varchar(16);not null;index" json:"connectorType" validate:"connector_type"`
	Status        StationStatus `gorm:"type:varchar(32);not null;default:Available;index" json:"status" validate:"station_status"`
	CreatedBy     string        `gorm:"type:varchar(36);not null;index" json:"createdBy" validate:"required"`
	CreatedAt     time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (s *Station) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// LocationPatch carries the location sub-fields supplied in an update.
type LocationPatch struct {
	Latitude  *float64
	Longitude *float64
	Address   *string
}

// StationPatch carries only the fields supplied in an update; nil means
// "leave unchanged".
type StationPatch struct {
	Name          *string
	Location      *LocationPatch
	PowerOutput   *float64
	ConnectorType *ConnectorType
	Status        *StationStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p StationPatch) IsEmpty() bool {
	return p.Name == nil && p.PowerOutput == nil && p.ConnectorType == nil && p.Status == nil &&
		(p.Location == nil || (p.Location.Latitude == nil && p.Location.Longitude == nil && p.Location.Address == nil))
}

// Apply merges the supplied fields into s.
func (p StationPatch) Apply(s *Station) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if l := p.Location; l != nil {
		if l.Latitude != nil {
			s.Location.Latitude = *l.Latitude
		}
		if l.Longitude != nil {
			s.Location.Longitude = *l.Longitude
		}
		if l.Address != nil {
			s.Location.Address = *l.Address
		}
	}
	if p.PowerOutput != nil {
		s.PowerOutput = *p.PowerOutput
	}
	if p.ConnectorType != nil {
		s.ConnectorType = *p.ConnectorType
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

// StationFilter holds the optional list constraints. All set constraints must
// hold; the power bounds are inclusive.
type StationFilter struct {
	Status        StationStatus
	ConnectorType ConnectorType
	MinPower      *float64
	MaxPower      *float64
}

// Matches reports whether s satisfies every set constraint of f.
func (f StationFilter) Matches(s *Station) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.ConnectorType != "" && s.ConnectorType != f.ConnectorType {
		return false
	}
	if f.MinPower != nil && s.PowerOutput < *f.MinPower {
		return false
	}
	if f.MaxPower != nil && s.PowerOutput > *f.MaxPower {
		return false
	}
	return true
}

// CreatorRef is a station's creator as returned to clients: the public
// profile when the user exists, otherwise the bare id.
type CreatorRef struct {
	ID   string
	User *UserSummary
}

// MarshalJSON renders the profile object or the opaque id string.
func (c CreatorRef) MarshalJSON() ([]byte, error) {
	if c.User == nil {
		return json.Marshal(c.ID)
	}
	return json.Marshal(c.User)
}

// StationWithCreator is a station enriched with its creator's profile.
type StationWithCreator struct {
	Station
	CreatedBy CreatorRef `json:"createdBy"`
}

// WithCreator joins s with the matching entry of users, if any.
func (s Station) WithCreator(users map[string]UserSummary) StationWithCreator {
	ref := CreatorRef{ID: s.CreatedBy}
	if u, ok := users[s.CreatedBy]; ok {
		ref.User = &u
	}
	return StationWithCreator{Station: s, CreatedBy: ref}
}
