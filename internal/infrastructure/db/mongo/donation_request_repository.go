package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

const collectionDonationRequests = "donationRequests"

type DonationRequestRepository struct {
	col *mongo.Collection
}

func NewDonationRequestRepository(db *mongo.Database) *DonationRequestRepository {
	return &DonationRequestRepository{col: db.Collection(collectionDonationRequests)}
}

type donationRequestDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	RequesterEmail    string             `bson:"requesterEmail"`
	RequesterName     string             `bson:"requesterName"`
	RecipientName     string             `bson:"recipientName"`
	BloodGroup        string             `bson:"bloodGroup"`
	RecipientDistrict string             `bson:"recipientDistrict"`
	RecipientUpazila  string             `bson:"recipientUpazila,omitempty"`
	HospitalName      string             `bson:"hospitalName,omitempty"`
	FullAddress       string             `bson:"fullAddress,omitempty"`
	DonationDate      string             `bson:"donationDate,omitempty"`
	DonationTime      string             `bson:"donationTime,omitempty"`
	RequestMessage    string             `bson:"requestMessage,omitempty"`
	Status            string             `bson:"status"`
	DonorName         *string            `bson:"donorName"`
	DonorEmail        *string            `bson:"donorEmail"`
	CreatedAt         time.Time          `bson:"createdAt"`
	AssignedAt        *time.Time         `bson:"assignedAt,omitempty"`
	CompletedAt       *time.Time         `bson:"completedAt,omitempty"`
	UpdatedAt         *time.Time         `bson:"updatedAt,omitempty"`
}

// Create inserts a new donation request document.
func (r *DonationRequestRepository) Create(ctx context.Context, req *domain.DonationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toRequestDoc(req))
	if err != nil {
		return "", fmt.Errorf("insert donation request: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

// FindByID retrieves a donation request by its hex ObjectID.
func (r *DonationRequestRepository) FindByID(ctx context.Context, id string) (*domain.DonationRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc donationRequestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find donation request: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns requests matching filter, newest first.
func (r *DonationRequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*domain.DonationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.RequesterEmail != "" {
		q["requesterEmail"] = filter.RequesterEmail
	}
	if filter.DonorEmail != "" {
		q["donorEmail"] = filter.DonorEmail
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list donation requests: %w", err)
	}
	var docs []donationRequestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode donation requests: %w", err)
	}

	out := make([]*domain.DonationRequest, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// ApplyUpdate issues a single FindOneAndUpdate whose filter carries the guard,
// so the check and the write happen atomically in the store.
func (r *DonationRequestRepository) ApplyUpdate(ctx context.Context, id string, guard domain.Guard, upd domain.RequestUpdate) (*domain.DonationRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if guard.Status != "" {
		filter["status"] = string(guard.Status)
	}
	if guard.DonorEmail != "" {
		filter["donorEmail"] = guard.DonorEmail
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc donationRequestDoc
	err = r.col.FindOneAndUpdate(ctx, filter, buildRequestUpdate(upd), opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update donation request: %w", err)
	}
	if guard.IsZero() {
		return nil, domain.ErrRequestNotFound
	}

	// The guarded write matched nothing: tell a missing document apart from
	// one that moved on.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count donation request: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrRequestNotFound
	}
	return nil, domain.ErrConflict
}

// Delete removes a donation request.
func (r *DonationRequestRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete donation request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the donationRequests collection.
func (r *DonationRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "requesterEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "donorEmail", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildRequestUpdate(upd domain.RequestUpdate) bson.M {
	set := bson.M{"updatedAt": upd.UpdatedAt.UTC()}

	if d := upd.ReplaceDetails; d != nil {
		set["requesterName"] = d.RequesterName
		set["recipientName"] = d.RecipientName
		set["bloodGroup"] = d.BloodGroup
		set["recipientDistrict"] = d.RecipientDistrict
		set["recipientUpazila"] = d.RecipientUpazila
		set["hospitalName"] = d.HospitalName
		set["fullAddress"] = d.FullAddress
		set["donationDate"] = d.DonationDate
		set["donationTime"] = d.DonationTime
		set["requestMessage"] = d.RequestMessage
	}

	p := upd.Details
	for field, v := range map[string]*string{
		"requesterName":     p.RequesterName,
		"recipientName":     p.RecipientName,
		"bloodGroup":        p.BloodGroup,
		"recipientDistrict": p.RecipientDistrict,
		"recipientUpazila":  p.RecipientUpazila,
		"hospitalName":      p.HospitalName,
		"fullAddress":       p.FullAddress,
		"donationDate":      p.DonationDate,
		"donationTime":      p.DonationTime,
		"requestMessage":    p.RequestMessage,
	} {
		if v != nil {
			set[field] = *v
		}
	}

	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.DonorName != nil {
		set["donorName"] = *upd.DonorName
	}
	if upd.DonorEmail != nil {
		set["donorEmail"] = *upd.DonorEmail
	}
	if upd.AssignedAt != nil {
		set["assignedAt"] = upd.AssignedAt.UTC()
	}
	if upd.CompletedAt != nil {
		set["completedAt"] = upd.CompletedAt.UTC()
	}

	update := bson.M{"$set": set}
	if upd.ClearDonor {
		set["donorName"] = nil
		set["donorEmail"] = nil
		update["$unset"] = bson.M{"assignedAt": ""}
	}
	return update
}

func toRequestDoc(r *domain.DonationRequest) donationRequestDoc {
	return donationRequestDoc{
		RequesterEmail:    r.RequesterEmail,
		RequesterName:     r.RequesterName,
		RecipientName:     r.RecipientName,
		BloodGroup:        r.BloodGroup,
		RecipientDistrict: r.RecipientDistrict,
		RecipientUpazila:  r.RecipientUpazila,
		HospitalName:      r.HospitalName,
		FullAddress:       r.FullAddress,
		DonationDate:      r.DonationDate,
		DonationTime:      r.DonationTime,
		RequestMessage:    r.RequestMessage,
		Status:            string(r.Status),
		DonorName:         r.DonorName,
		DonorEmail:        r.DonorEmail,
		CreatedAt:         r.CreatedAt.UTC(),
		AssignedAt:        utc(r.AssignedAt),
		CompletedAt:       utc(r.CompletedAt),
		UpdatedAt:         utc(r.UpdatedAt),
	}
}

func (d donationRequestDoc) toDomain() *domain.DonationRequest {
	return &domain.DonationRequest{
		ID:             d.ID.Hex(),
		RequesterEmail: d.RequesterEmail,
		RequestDetails: domain.RequestDetails{
			RequesterName:     d.RequesterName,
			RecipientName:     d.RecipientName,
			BloodGroup:        d.BloodGroup,
			RecipientDistrict: d.RecipientDistrict,
			RecipientUpazila:  d.RecipientUpazila,
			HospitalName:      d.HospitalName,
			FullAddress:       d.FullAddress,
			DonationDate:      d.DonationDate,
			DonationTime:      d.DonationTime,
			RequestMessage:    d.RequestMessage,
		},
		Status:      domain.RequestStatus(d.Status),
		DonorName:   d.DonorName,
		DonorEmail:  d.DonorEmail,
		CreatedAt:   d.CreatedAt,
		AssignedAt:  d.AssignedAt,
		CompletedAt: d.CompletedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
