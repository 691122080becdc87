package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type ProductHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AdjustStock(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ProductHandlerImpl struct {
	productService product.ProductService
}

// Create implements ProductHandler.
func (h *ProductHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create product decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.productService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create product", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product created successfully", created)
}

// List implements ProductHandler.
func (h *ProductHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	products, err := h.productService.List(r.Context(), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, products)
}

// Get implements ProductHandler.
func (h *ProductHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := h.productService.Get(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements ProductHandler.
func (h *ProductHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req product.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update product decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.productService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Product update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product updated successfully", updated)
}

// AdjustStock implements ProductHandler.
func (h *ProductHandlerImpl) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req product.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.productService.AdjustStock(r.Context(), chi.URLParam(r, "id"), claims.ComplexID, req)
	if err != nil {
		slog.Error("Product stock adjust error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stock updated successfully", updated)
}

// Delete implements ProductHandler.
func (h *ProductHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "id"), claims.ComplexID); err != nil {
		slog.Error("Product delete error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product deleted successfully", nil)
}

func NewProductHandler(productService product.ProductService) ProductHandler {
	return &ProductHandlerImpl{productService: productService}
}
