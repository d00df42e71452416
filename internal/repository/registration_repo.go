package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"formflow/internal/model"
)

// RegistrationRepo handles MongoDB operations for submitted registrations.
// Drafts live in Redis until submission; only submitted registrations reach
// this collection.
type RegistrationRepo interface {
	Create(ctx context.Context, reg *model.Registration) (string, error)
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.Registration, error)
}

type registrationRepo struct {
	collection *mongo.Collection
}

// NewRegistrationRepo creates a new registration repository
func NewRegistrationRepo(db *mongo.Database) RegistrationRepo {
	return &registrationRepo{
		collection: db.Collection("registrations"),
	}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.Registration) (string, error) {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}
	reg.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, reg)
	if err != nil {
		return "", err
	}
	return reg.ID, nil
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	var reg model.Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var regs []*model.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}
