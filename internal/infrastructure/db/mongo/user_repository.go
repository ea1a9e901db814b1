package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Avatar     string             `bson:"avatar,omitempty"`
	BloodGroup string             `bson:"bloodGroup"`
	District   string             `bson:"district"`
	Upazila    string             `bson:"upazila"`
	Role       string             `bson:"role"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  *time.Time         `bson:"updatedAt,omitempty"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Name:       user.Name,
		Email:      user.Email,
		Avatar:     user.Avatar,
		BloodGroup: user.BloodGroup,
		District:   user.District,
		Upazila:    user.Upazila,
		Role:       string(user.Role),
		Status:     string(user.Status),
		CreatedAt:  user.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.find(ctx, filter)
}

// Search matches active users; upazila is an exact, case-insensitive match.
func (r *UserRepository) Search(ctx context.Context, q ports.DonorSearch) ([]*domain.User, error) {
	filter := bson.M{"status": string(domain.UserActive)}
	if q.BloodGroup != "" {
		filter["bloodGroup"] = q.BloodGroup
	}
	if q.District != "" {
		filter["district"] = q.District
	}
	if q.Upazila != "" {
		filter["upazila"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q.Upazila) + "$", Options: "i"}
	}
	return r.find(ctx, filter)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch, now time.Time) (*domain.User, error) {
	set := bson.M{"updatedAt": now.UTC()}
	for field, v := range map[string]*string{
		"name":       patch.Name,
		"avatar":     patch.Avatar,
		"bloodGroup": patch.BloodGroup,
		"district":   patch.District,
		"upazila":    patch.Upazila,
	} {
		if v != nil {
			set[field] = *v
		}
	}
	return r.findAndSet(ctx, bson.M{"email": email}, set)
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.Role, now time.Time) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findAndSet(ctx, bson.M{"_id": oid}, bson.M{"role": string(role), "updatedAt": now.UTC()})
}

func (r *UserRepository) SetStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findAndSet(ctx, bson.M{"_id": oid}, bson.M{"status": string(status), "updatedAt": now.UTC()})
}

// EnsureIndexes creates the unique email index the access gate relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "bloodGroup", Value: 1}, {Key: "district", Value: 1}}},
	})
	return err
}

func (r *UserRepository) findAndSet(ctx context.Context, filter, set bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// toDomain fills the defaults for records created before role and status existed.
func (d userDoc) toDomain() *domain.User {
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleDonor
	}
	status := domain.UserStatus(d.Status)
	if status == "" {
		status = domain.UserActive
	}
	return &domain.User{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Avatar:     d.Avatar,
		BloodGroup: d.BloodGroup,
		District:   d.District,
		Upazila:    d.Upazila,
		Role:       role,
		Status:     status,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
