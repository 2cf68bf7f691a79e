package catalog

import (
	"strings"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// DefaultGuestName is used for reviews left without any known reviewer name
const DefaultGuestName = "Guest"

// Review is a customer's rating of a product
type Review struct {
	shared.BaseEntity
	ProductID  int64
	UserID     *string
	GuestName  string
	Rating     int
	Comment    string
	IsApproved bool
}

// NewReview creates a review. Reviews submitted alongside an order rating are
// approved immediately.
func NewReview(productID int64, userID *string, guestName string, rating int, comment string, approved bool, now time.Time) (*Review, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Review must reference a product")
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		guestName = DefaultGuestName
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(now),
		ProductID:  productID,
		UserID:     userID,
		GuestName:  guestName,
		Rating:     rating,
		Comment:    comment,
		IsApproved: approved,
	}, nil
}

// ValidateRating checks that a rating is on the 1–5 scale
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Rating must be between 1 and 5")
	}
	return nil
}

// RatingSummary aggregates all reviews ever recorded
type RatingSummary struct {
	Average float64
	Count   int64
}
