package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/repository"
	"github.com/ev-charging/api/internal/validators"
	"github.com/ev-charging/api/pkg/database"
	appErr "github.com/ev-charging/api/pkg/errors"
)

type stationRepository struct {
	coll *mongo.Collection
}

// NewStationRepository returns a station store over db's stations collection.
func NewStationRepository(db *mongo.Database) repository.StationRepository {
	return &stationRepository{coll: db.Collection(stationsCollection)}
}

func notFound() error {
	return appErr.New(appErr.CodeNotFound, repository.StationNotFound)
}

func (r *stationRepository) Create(ctx context.Context, s *models.Station) error {
	if err := validators.Struct(s); err != nil {
		return err
	}
	creator, err := bson.ObjectIDFromHex(s.CreatedBy)
	if err != nil {
		return appErr.Invalid(appErr.FieldError{Field: "createdBy", Message: "must be a valid id", Value: s.CreatedBy})
	}

	created := s.CreatedAt
	if created.IsZero() {
		created = database.Now()
	}
	doc := stationDocument{
		ID:   bson.NewObjectID(),
		Name: s.Name,
		Location: locationDocument{
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			Address:   s.Location.Address,
		},
		PowerOutput:   s.PowerOutput,
		ConnectorType: string(s.ConnectorType),
		Status:        string(s.Status),
		CreatedBy:     creator,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create station failed")
	}
	*s = doc.model()
	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id string, dest *models.Station) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return notFound()
	}
	var doc stationDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound()
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get station failed")
	}
	*dest = doc.model()
	return nil
}

func (r *stationRepository) List(ctx context.Context, f models.StationFilter) ([]models.Station, error) {
	cur, err := r.coll.Find(ctx, filterDocument(f),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list stations failed")
	}
	var docs []stationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list stations failed")
	}
	out := make([]models.Station, len(docs))
	for i := range docs {
		out[i] = docs[i].model()
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

	oid, _ := bson.ObjectIDFromHex(id)
	set := setDocument(patch)
	set["updatedAt"] = database.Now()

	var doc stationDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound()
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "update station failed")
	}
	out := doc.model()
	return &out, nil
}

func (r *stationRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return notFound()
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "delete station failed")
	}
	if res.DeletedCount == 0 {
		return notFound()
	}
	return nil
}
