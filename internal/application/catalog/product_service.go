package catalog

import (
	"context"
	"strings"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles the minimal product catalog the shop needs to sell
type ProductService struct {
	productRepo catalog.ProductRepository
	reviewRepo  catalog.ReviewRepository
	clock       shared.Clock
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	reviewRepo catalog.ReviewRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *ProductService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		clock:       clock,
		logger:      logger,
	}
}

// Create creates a new product. The slug is derived from the name and must
// not be taken.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "CreateProduct")
	defer span.End()

	product, err := catalog.NewProduct(req.Name, req.Price, req.Stock, s.clock.Now())
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Product with this slug already exists")
	}

	product.Description = strings.TrimSpace(req.Description)
	product.ImageURL = req.ImageURL
	product.IsFeatured = req.IsFeatured
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("slug", product.Slug),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns the catalog, optionally restricted to active products
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, error) {
	var (
		products []catalog.Product
		err      error
	)
	if query.ActiveOnly {
		products, err = s.productRepo.FindActive(ctx)
	} else {
		products, err = s.productRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Reviews lists the approved reviews of a product, newest first
func (s *ProductService) Reviews(ctx context.Context, productID int64, query ListReviewsQuery) (*ReviewListResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	filter.PageSize = DefaultReviewPageSize
	if query.Limit > 0 {
		filter.PageSize = query.Limit
	}
	if filter.PageSize > MaxReviewPageSize {
		filter.PageSize = MaxReviewPageSize
	}

	reviews, total, err := s.reviewRepo.FindApprovedByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return &ReviewListResponse{
		Reviews: ToReviewResponses(reviews),
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.PageSize,
	}, nil
}
