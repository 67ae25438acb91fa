package transport

import (
	"errors"
	"net/http"

	"stocktrack/internal/domain"
	"stocktrack/internal/middleware"
	"stocktrack/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScanRequest represents the product ingestion request payload
type ScanRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

// UpdateCategoryRequest represents the recategorization request payload
type UpdateCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// ProductResponse pairs a result message with the affected product
type ProductResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	ingestion service.IngestionService
	query     service.QueryService
	analytics service.AnalyticsService
	logger    *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	ingestion service.IngestionService,
	query service.QueryService,
	analytics service.AnalyticsService,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		ingestion: ingestion,
		query:     query,
		analytics: analytics,
		logger:    logger,
	}
}

// RegisterRoutes registers all product routes behind the auth middleware
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/products", h.ScanProduct)
		r.Get("/products", h.ListProducts)
		r.Put("/products/{id}/category", h.UpdateCategory)
		r.Get("/analytics", h.Analytics)
	})
}

// ScanProduct handles idempotent product ingestion by barcode
func (h *ProductHandler) ScanProduct(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Scan request validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Barcode is required")
		return
	}

	product, created, err := h.ingestion.Ingest(r.Context(), req.Barcode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBarcodeRequired):
			middleware.RespondWithError(w, http.StatusBadRequest, "Barcode is required")
		case errors.Is(err, service.ErrProductNotFound):
			h.logger.Info("Barcode not found in external catalog", zap.String("barcode", req.Barcode))
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found in external catalog")
		default:
			h.logger.Error("Product ingestion failed",
				zap.String("barcode", req.Barcode),
				zap.Error(err),
			)
			middleware.RespondWithServerError(w, "Failed to add product", err)
		}
		return
	}

	if created {
		h.logger.Info("Product created",
			zap.String("product_id", product.ID.String()),
			zap.String("barcode", product.Barcode),
		)
		middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{
			Message: "Product added successfully",
			Product: product,
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Message: "Product already exists",
		Product: product,
	})
}

// ListProducts handles catalog browsing with optional filters
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	products, err := h.query.ListProducts(r.Context(), category, search)
	if err != nil {
		h.logger.Error("Product listing failed",
			zap.String("category", category),
			zap.String("search", search),
			zap.Error(err),
		)
		middleware.RespondWithServerError(w, "Failed to fetch products", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// UpdateCategory handles product recategorization
func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// A malformed id cannot refer to any product
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req UpdateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category update validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Category is required")
		return
	}

	product, err := h.query.UpdateCategory(r.Context(), id, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Category update failed",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		middleware.RespondWithServerError(w, "Failed to update category", err)
		return
	}

	h.logger.Info("Product recategorized",
		zap.String("product_id", product.ID.String()),
		zap.String("category", product.Category),
	)
	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Message: "Category updated successfully",
		Product: product,
	})
}

// Analytics handles the dashboard aggregate endpoint
func (h *ProductHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Analytics computation failed", zap.Error(err))
		middleware.RespondWithServerError(w, "Failed to fetch analytics", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}
