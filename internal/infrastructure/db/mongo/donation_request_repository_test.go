package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

func TestParseID(t *testing.T) {
	if _, err := parseID("65f1c0ffee0000000000abcd"); err != nil {
		t.Fatalf("valid id: %v", err)
	}
	for _, bad := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := parseID(bad); !errors.Is(err, domain.ErrInvalidID) {
			t.Errorf("parseID(%q): expected ErrInvalidID, got %v", bad, err)
		}
	}
}

func TestBuildRequestUpdate_Confirm(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	status := domain.StatusInProgress
	name, email := "D", "d@x.com"

	update := buildRequestUpdate(domain.RequestUpdate{
		Status:     &status,
		DonorName:  &name,
		DonorEmail: &email,
		AssignedAt: &now,
		UpdatedAt:  now,
	})

	set := update["$set"].(bson.M)
	if set["status"] != "inprogress" || set["donorEmail"] != "d@x.com" || set["donorName"] != "D" {
		t.Fatalf("unexpected $set: %v", set)
	}
	if set["assignedAt"] != now || set["updatedAt"] != now {
		t.Fatalf("timestamps not written: %v", set)
	}
	if _, ok := update["$unset"]; ok {
		t.Fatal("confirm must not unset fields")
	}
	if _, ok := set["requesterEmail"]; ok {
		t.Fatal("requesterEmail must never be written by an update")
	}
}

func TestBuildRequestUpdate_ReleaseDonor(t *testing.T) {
	status := domain.StatusPending
	update := buildRequestUpdate(domain.RequestUpdate{Status: &status, ClearDonor: true, UpdatedAt: time.Now()})

	set := update["$set"].(bson.M)
	if v, ok := set["donorEmail"]; !ok || v != nil {
		t.Fatalf("donorEmail should be set to null, got %v", set)
	}
	if v, ok := set["donorName"]; !ok || v != nil {
		t.Fatalf("donorName should be set to null, got %v", set)
	}
	unset := update["$unset"].(bson.M)
	if _, ok := unset["assignedAt"]; !ok {
		t.Fatalf("assignedAt should be unset, got %v", unset)
	}
}

func TestBuildRequestUpdate_DetailsOnlyTouchesGivenFields(t *testing.T) {
	hospital := "DMCH"
	update := buildRequestUpdate(domain.RequestUpdate{
		Details:   domain.DetailsPatch{HospitalName: &hospital},
		UpdatedAt: time.Now(),
	})

	set := update["$set"].(bson.M)
	if len(set) != 2 || set["hospitalName"] != "DMCH" {
		t.Fatalf("expected only hospitalName and updatedAt, got %v", set)
	}
}

func TestRequestDoc_RoundTripKeepsNullDonor(t *testing.T) {
	req := &domain.DonationRequest{
		RequesterEmail: "a@x.com",
		RequestDetails: domain.RequestDetails{RequesterName: "A", RecipientName: "B", BloodGroup: "O+", RecipientDistrict: "Dhaka"},
		Status:         domain.StatusPending,
		CreatedAt:      time.Now(),
	}

	raw, err := bson.Marshal(toRequestDoc(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := stored["donorEmail"]; !ok || v != nil {
		t.Fatalf("pending requests must store donorEmail as null, got %v", stored["donorEmail"])
	}
	if _, ok := stored["_id"]; ok {
		t.Fatal("_id must be left to the store")
	}
}
