package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ev-charging/api/internal/models"
)

const (
	usersCollection    = "users"
	stationsCollection = "stations"
)

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	Name         string        `bson:"name"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func (d *userDocument) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type locationDocument struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
	Address   string  `bson:"address"`
}

type stationDocument struct {
	ID            bson.ObjectID    `bson:"_id,omitempty"`
	Name          string           `bson:"name"`
	Location      locationDocument `bson:"location"`
	PowerOutput   float64          `bson:"powerOutput"`
	ConnectorType string           `bson:"connectorType"`
	Status        string           `bson:"status"`
	CreatedBy     bson.ObjectID    `bson:"createdBy"`
	CreatedAt     time.Time        `bson:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt"`
}

func (d *stationDocument) model() models.Station {
	return models.Station{
		ID:   d.ID.Hex(),
		Name: d.Name,
		Location: models.Location{
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
			Address:   d.Location.Address,
		},
		PowerOutput:   d.PowerOutput,
		ConnectorType: models.ConnectorType(d.ConnectorType),
		Status:        models.StationStatus(d.Status),
		CreatedBy:     d.CreatedBy.Hex(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// filterDocument builds the query for f. The power bounds share one range
// predicate on powerOutput.
func filterDocument(f models.StationFilter) bson.M {
	doc := bson.M{}
	if f.Status != "" {
		doc["status"] = string(f.Status)
	}
	if f.ConnectorType != "" {
		doc["connectorType"] = string(f.ConnectorType)
	}
	if f.MinPower != nil || f.MaxPower != nil {
		rng := bson.M{}
		if f.MinPower != nil {
			rng["$gte"] = *f.MinPower
		}
		if f.MaxPower != nil {
			rng["$lte"] = *f.MaxPower
		}
		doc["powerOutput"] = rng
	}
	return doc
}

// setDocument maps the supplied patch fields to a $set document.
func setDocument(p models.StationPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if l := p.Location; l != nil {
		if l.Latitude != nil {
			set["location.latitude"] = *l.Latitude
		}
		if l.Longitude != nil {
			set["location.longitude"] = *l.Longitude
		}
		if l.Address != nil {
			set["location.address"] = *l.Address
		}
	}
	if p.PowerOutput != nil {
		set["powerOutput"] = *p.PowerOutput
	}
	if p.ConnectorType != nil {
		set["connectorType"] = string(*p.ConnectorType)
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	return set
}
