package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"github.com/google/uuid"
)

// EnrollmentBuilder creates enrollment requests with a builder pattern
type EnrollmentBuilder struct {
	req domain.EnrollmentRequest
}

// NewEnrollmentBuilder creates a new EnrollmentBuilder with default values
func NewEnrollmentBuilder() *EnrollmentBuilder {
	return &EnrollmentBuilder{
		req: domain.EnrollmentRequest{
			FirstName:     "Ann",
			MiddleName:    "",
			LastName:      "Lee",
			Age:           30,
			Gender:        "F",
			PhoneNumber:   "555-1111",
			Address:       "1 Main St",
			FingerprintID: 42,
			ClientID:      fmt.Sprintf("terminal_%s", uuid.New().String()[:8]),
		},
	}
}

// WithName sets the first, middle and last name
func (b *EnrollmentBuilder) WithName(first, middle, last string) *EnrollmentBuilder {
	b.req.FirstName = first
	b.req.MiddleName = middle
	b.req.LastName = last
	return b
}

// WithFingerprintID sets the scanner-assigned fingerprint id
func (b *EnrollmentBuilder) WithFingerprintID(id int) *EnrollmentBuilder {
	b.req.FingerprintID = id
	return b
}

// WithClientID sets the owning terminal identifier
func (b *EnrollmentBuilder) WithClientID(id string) *EnrollmentBuilder {
	b.req.ClientID = id
	return b
}

// WithAge sets the age
func (b *EnrollmentBuilder) WithAge(age int) *EnrollmentBuilder {
	b.req.Age = age
	return b
}

// Request returns the built request without persisting it
func (b *EnrollmentBuilder) Request() domain.EnrollmentRequest {
	return b.req
}

// Build enrolls the user through the repository and returns the new id
// along with the request it was built from.
func (b *EnrollmentBuilder) Build(t *testing.T, users repository.UserRepository) (uint, domain.EnrollmentRequest) {
	t.Helper()

	id, err := users.Enroll(context.Background(), b.req)
	if err != nil {
		t.Fatalf("failed to enroll user: %v", err)
	}
	return id, b.req
}
