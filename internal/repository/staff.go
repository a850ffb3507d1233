package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// ErrStaffExists is returned when an email is already registered.
var ErrStaffExists = errors.New("staff member already exists")

// StaffRepository stores staff accounts.
type StaffRepository struct {
	collection *mongo.Collection
}

// NewStaffRepository creates a staff repository.
func NewStaffRepository(db *MongoDB) *StaffRepository {
	return &StaffRepository{collection: db.Staff}
}

// Create inserts a staff member. Emails are stored lower-cased.
func (r *StaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	now := time.Now().UTC()
	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	staff.Email = strings.ToLower(strings.TrimSpace(staff.Email))
	staff.CreatedAt = now
	staff.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, staff)
	if mongo.IsDuplicateKeyError(err) {
		return ErrStaffExists
	}
	return err
}

// FindByEmail returns nil, nil when no account matches.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

// FindByID returns nil, nil when no account matches.
func (r *StaffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StaffRepository) findOne(ctx context.Context, filter bson.M) (*model.Staff, error) {
	var staff model.Staff
	if err := r.collection.FindOne(ctx, filter).Decode(&staff); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}
