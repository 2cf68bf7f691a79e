package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) SaveBatch(ctx context.Context, reviews []*catalog.Review) error {
	args := m.Called(ctx, reviews)
	return args.Error(0)
}

func (m *MockReviewRepository) FindApprovedByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]catalog.Review, int64, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]catalog.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Summary(ctx context.Context) (catalog.RatingSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.RatingSummary), args.Error(1)
}

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestService() (*ProductService, *MockProductRepository, *MockReviewRepository) {
	products := new(MockProductRepository)
	reviews := new(MockReviewRepository)
	return NewProductService(products, reviews, shared.FixedClock{At: testNow}, nil), products, reviews
}

func testProduct(id int64, name string, active bool) catalog.Product {
	p := catalog.Product{Name: name, Slug: catalog.Slugify(name), Price: 25000, IsActive: active}
	p.ID = id
	p.CreatedAt = testNow
	p.UpdatedAt = testNow
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug and saves", func(t *testing.T) {
		svc, products, _ := newTestService()
		stock := int64(12)
		products.On("ExistsBySlug", mock.Anything, "madu-hutan-500g").Return(false, nil)
		products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Product).ID = 7
			}).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Name:        "Madu Hutan 500g",
			Description: "  Raw forest honey ",
			Price:       85000,
			Stock:       &stock,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "madu-hutan-500g", resp.Slug)
		assert.Equal(t, "Raw forest honey", resp.Description)
		assert.True(t, resp.IsActive)
		assert.Equal(t, int64(12), *resp.Stock)
		assert.Equal(t, testNow, resp.CreatedAt)
		products.AssertExpectations(t)
	})

	t.Run("inactive on request", func(t *testing.T) {
		svc, products, _ := newTestService()
		inactive := false
		products.On("ExistsBySlug", mock.Anything, "propolis").Return(false, nil)
		products.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{Name: "Propolis", Price: 1000, IsActive: &inactive})

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("slug taken", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("ExistsBySlug", mock.Anything, "propolis").Return(true, nil)

		_, err := svc.Create(ctx, CreateProductRequest{Name: "Propolis", Price: 1000})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name string
		req  CreateProductRequest
		code string
	}{
		{"negative price", CreateProductRequest{Name: "Madu", Price: -1}, shared.CodeInvalidInput},
		{"no letters", CreateProductRequest{Name: "!!!", Price: 1}, shared.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, products, _ := newTestService()
			_, err := svc.Create(ctx, tt.req)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			products.AssertNotCalled(t, "ExistsBySlug", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	all := []catalog.Product{testProduct(1, "Madu Hutan", true), testProduct(2, "Propolis", false)}

	t.Run("active only", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindActive", mock.Anything).Return(all[:1], nil)

		resp, err := svc.List(ctx, ListProductsQuery{ActiveOnly: true})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "madu-hutan", resp[0].Slug)
		products.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("everything", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindAll", mock.Anything).Return(all, nil)

		resp, err := svc.List(ctx, ListProductsQuery{})

		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}

func TestProductService_GetByID(t *testing.T) {
	svc, products, _ := newTestService()
	p := testProduct(3, "Bee Pollen", true)
	products.On("FindByID", mock.Anything, int64(3)).Return(&p, nil)
	products.On("FindByID", mock.Anything, int64(4)).Return(nil, shared.ErrNotFound)

	resp, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "bee-pollen", resp.Slug)

	_, err = svc.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Reviews(t *testing.T) {
	ctx := context.Background()
	p := testProduct(3, "Bee Pollen", true)

	t.Run("pages with caps", func(t *testing.T) {
		svc, products, reviews := newTestService()
		products.On("FindByID", mock.Anything, int64(3)).Return(&p, nil)
		review := catalog.Review{ProductID: 3, GuestName: "Budi", Rating: 5, Comment: "Mantap", IsApproved: true}
		review.ID = 9
		reviews.On("FindApprovedByProduct", mock.Anything, int64(3), mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 2 && f.PageSize == MaxReviewPageSize
		})).Return([]catalog.Review{review}, int64(51), nil)

		resp, err := svc.Reviews(ctx, 3, ListReviewsQuery{Page: 2, Limit: 500})

		require.NoError(t, err)
		assert.Equal(t, int64(51), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, MaxReviewPageSize, resp.Limit)
		require.Len(t, resp.Reviews, 1)
		assert.Equal(t, "Budi", resp.Reviews[0].GuestName)
	})

	t.Run("defaults", func(t *testing.T) {
		svc, products, reviews := newTestService()
		products.On("FindByID", mock.Anything, int64(3)).Return(&p, nil)
		reviews.On("FindApprovedByProduct", mock.Anything, int64(3), mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == DefaultReviewPageSize
		})).Return([]catalog.Review{}, int64(0), nil)

		resp, err := svc.Reviews(ctx, 3, ListReviewsQuery{})

		require.NoError(t, err)
		assert.Empty(t, resp.Reviews)
		assert.NotNil(t, resp.Reviews)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, products, reviews := newTestService()
		products.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound)

		_, err := svc.Reviews(ctx, 99, ListReviewsQuery{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		reviews.AssertNotCalled(t, "FindApprovedByProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}
