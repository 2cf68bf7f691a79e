package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNewProduct(t *testing.T) {
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("creates active product with derived slug", func(t *testing.T) {
		product, err := NewProduct("  Madu Hutan Murni 500g ", 25000, int64Ptr(10), now)
		require.NoError(t, err)

		assert.Equal(t, "Madu Hutan Murni 500g", product.Name)
		assert.Equal(t, "madu-hutan-murni-500g", product.Slug)
		assert.Equal(t, int64(25000), product.Price)
		assert.Equal(t, int64(10), *product.Stock)
		assert.True(t, product.IsActive)
		assert.True(t, product.IsNew())
		assert.Equal(t, now, product.CreatedAt)
		assert.Equal(t, now, product.UpdatedAt)
	})

	t.Run("allows untracked stock", func(t *testing.T) {
		product, err := NewProduct("Honey Stick", 5000, nil, now)
		require.NoError(t, err)
		assert.False(t, product.TracksStock())
		assert.True(t, product.CanFulfil(1000))
	})

	tests := []struct {
		name  string
		pname string
		price int64
		stock *int64
		code  string
	}{
		{"empty name", "", 100, nil, shared.CodeInvalidInput},
		{"name without letters", "!!!", 100, nil, shared.CodeInvalidInput},
		{"negative price", "Honey", -1, nil, shared.CodeInvalidInput},
		{"negative stock", "Honey", 100, int64Ptr(-1), shared.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.pname, tt.price, tt.stock, now)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestProduct_StockQueries(t *testing.T) {
	tests := []struct {
		name       string
		stock      *int64
		price      int64
		canFulfil2 bool
		low        bool
		out        bool
		value      int64
	}{
		{"plenty", int64Ptr(20), 1000, true, false, false, 20000},
		{"low", int64Ptr(9), 1000, true, true, false, 9000},
		{"exactly threshold", int64Ptr(10), 1000, true, false, false, 10000},
		{"one left", int64Ptr(1), 1000, false, true, false, 1000},
		{"empty", int64Ptr(0), 1000, false, true, true, 0},
		{"untracked", nil, 1000, true, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Price: tt.price, Stock: tt.stock}
			assert.Equal(t, tt.canFulfil2, p.CanFulfil(2))
			assert.Equal(t, tt.low, p.IsLowStock())
			assert.Equal(t, tt.out, p.IsOutOfStock())
			assert.Equal(t, tt.value, p.StockValue())
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Madu Hutan Murni":       "madu-hutan-murni",
		"Crème Brûlée":           "creme-brulee",
		"  --Raw   Honey 1kg-- ": "raw-honey-1kg",
		"Operasional & Gaji":     "operasional-gaji",
		"":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestNewReview(t *testing.T) {
	now := time.Now()

	t.Run("defaults guest name", func(t *testing.T) {
		review, err := NewReview(1, nil, "  ", 5, "great", true, now)
		require.NoError(t, err)
		assert.Equal(t, DefaultGuestName, review.GuestName)
		assert.True(t, review.IsApproved)
	})

	t.Run("rejects out of range rating", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := NewReview(1, nil, "Ana", rating, "", true, now)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewReview(0, nil, "Ana", 4, "", true, now)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
