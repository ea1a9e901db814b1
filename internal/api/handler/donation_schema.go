package handler

import (
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// Required fields are checked by the domain so a single 400 names all of
// them; the tags here only reject malformed values.
type donationDetailsRequest struct {
	RequesterName     string `json:"requesterName"     validate:"max=120"`
	RecipientName     string `json:"recipientName"     validate:"max=120"`
	BloodGroup        string `json:"bloodGroup"        validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	RecipientDistrict string `json:"recipientDistrict" validate:"max=80"`
	RecipientUpazila  string `json:"recipientUpazila"  validate:"max=80"`
	HospitalName      string `json:"hospitalName"      validate:"max=200"`
	FullAddress       string `json:"fullAddress"       validate:"max=300"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	RequestMessage    string `json:"requestMessage"    validate:"max=2000"`
}

type createDonationRequest struct {
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
	donationDetailsRequest
}

type replaceDonationRequest struct {
	donationDetailsRequest
}

// patchDonationRequest has no slot for _id, requesterEmail or createdAt, so
// those keys are dropped at decode time whatever the payload says.
type patchDonationRequest struct {
	Status     *string `json:"status"`
	DonorEmail *string `json:"donorEmail" validate:"omitempty,email"`
	DonorName  *string `json:"donorName"  validate:"omitempty,max=120"`

	RequesterName     *string `json:"requesterName"     validate:"omitempty,max=120"`
	RecipientName     *string `json:"recipientName"     validate:"omitempty,max=120"`
	BloodGroup        *string `json:"bloodGroup"        validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	RecipientDistrict *string `json:"recipientDistrict" validate:"omitempty,max=80"`
	RecipientUpazila  *string `json:"recipientUpazila"  validate:"omitempty,max=80"`
	HospitalName      *string `json:"hospitalName"      validate:"omitempty,max=200"`
	FullAddress       *string `json:"fullAddress"       validate:"omitempty,max=300"`
	DonationDate      *string `json:"donationDate"`
	DonationTime      *string `json:"donationTime"`
	RequestMessage    *string `json:"requestMessage"    validate:"omitempty,max=2000"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type createDonationResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type confirmDonationResponse struct {
	Message    string                  `json:"message"`
	DonorName  string                  `json:"donorName"`
	DonorEmail string                  `json:"donorEmail"`
	Request    *domain.DonationRequest `json:"request"`
}

type deleteDonationResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

func (r donationDetailsRequest) toDomain() domain.RequestDetails {
	return domain.RequestDetails{
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
	}
}

func (r patchDonationRequest) toInput() ports.PatchRequestInput {
	return ports.PatchRequestInput{
		Status:     r.Status,
		DonorEmail: r.DonorEmail,
		DonorName:  r.DonorName,
		Details: domain.DetailsPatch{
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
		},
	}
}
