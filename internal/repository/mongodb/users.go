package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/repository"
	"github.com/ev-charging/api/pkg/database"
	appErr "github.com/ev-charging/api/pkg/errors"
)

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a credential store over db's users collection.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	now := database.Now()
	doc := userDocument{
		ID:           bson.NewObjectID(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErr.Wrap(err, appErr.CodeConflict, "User already exists")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create user failed")
	}
	*u = doc.model()
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string, dest *models.User) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	return r.findOne(ctx, bson.M{"_id": oid}, dest)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	return r.findOne(ctx, bson.M{"email": email}, dest)
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, dest *models.User) error {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErr.New(appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user failed")
	}
	*dest = doc.model()
	return nil
}

func (r *userRepository) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1}),
	)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "load station creators failed")
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "load station creators failed")
	}
	for i := range docs {
		u := docs[i].model()
		out[u.ID] = u.Summary()
	}
	return out, nil
}
