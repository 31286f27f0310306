package marketplace

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/marketplace"
	"github.com/m04kA/SMC-SoundInkube/internal/service/marketplace/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidListingID   = "некорректный ID объявления"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgListingNotFound    = "объявление не найдено"
	msgOrderNotFound      = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgOwnListing         = "нельзя заказать собственное объявление"
	msgStatusTransition   = "недопустимая смена статуса заказа"
	msgInvalidInput       = "некорректные данные объявления"
)

type Handler struct {
	service MarketplaceService
	logger  Logger
}

func NewHandler(service MarketplaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateListing POST /api/v1/marketplace
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /marketplace - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateListingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /marketplace - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), actor, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrInvalidInput):
			h.logger.Warn("POST /marketplace - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /marketplace - Failed to create listing: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /marketplace - Listing created successfully: listing_id=%d, slug=%s", listing.ID, listing.Slug)
	handlers.RespondJSON(w, http.StatusCreated, listing)
}

// ListListings GET /api/v1/marketplace
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /marketplace", false)
}

// Search GET /api/v1/marketplace/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /marketplace/search", true)
}

// list общий разбор фильтров каталога. Поиск дополнительно принимает q и диапазон цен
func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, search bool) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("%s - Invalid pagination: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	ownerID, err := handlers.QueryInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("%s - Invalid ownerId: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListListingsRequest{
		Category: handlers.QueryString(r, "category"),
		OwnerID:  ownerID,
		Page:     page,
	}

	if search {
		req.Query = handlers.QueryString(r, "q")
		if req.MinPrice, err = handlers.QueryFloat(r, "minPrice"); err != nil {
			h.logger.Warn("%s - Invalid minPrice: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		if req.MaxPrice, err = handlers.QueryFloat(r, "maxPrice"); err != nil {
			h.logger.Warn("%s - Invalid maxPrice: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	result, err := h.service.ListListings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrInvalidInput):
			h.logger.Warn("%s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("%s - Failed to list listings: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetListing GET /api/v1/marketplace/{listingId}
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.ParseID(r, "listingId")
	if err != nil {
		h.logger.Warn("GET /marketplace/{id} - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	listing, err := h.service.GetListing(r.Context(), listingID)
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrListingNotFound):
			h.logger.Warn("GET /marketplace/{id} - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		default:
			h.logger.Error("GET /marketplace/{id} - Failed to get listing: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listing)
}

// UpdateListing PATCH /api/v1/marketplace/{listingId}
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.ParseID(r, "listingId")
	if err != nil {
		h.logger.Warn("PATCH /marketplace/{id} - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /marketplace/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateListingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /marketplace/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	listing, err := h.service.UpdateListing(r.Context(), actor, listingID, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrListingNotFound):
			h.logger.Warn("PATCH /marketplace/{id} - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, marketplace.ErrAccessDenied):
			h.logger.Warn("PATCH /marketplace/{id} - Access denied: listing_id=%d, user_id=%d", listingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, marketplace.ErrInvalidInput):
			h.logger.Warn("PATCH /marketplace/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /marketplace/{id} - Failed to update listing: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /marketplace/{id} - Listing updated successfully: listing_id=%d", listingID)
	handlers.RespondJSON(w, http.StatusOK, listing)
}

// DeleteListing DELETE /api/v1/marketplace/{listingId}
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.ParseID(r, "listingId")
	if err != nil {
		h.logger.Warn("DELETE /marketplace/{id} - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /marketplace/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteListing(r.Context(), actor, listingID); err != nil {
		switch {
		case errors.Is(err, marketplace.ErrListingNotFound):
			h.logger.Warn("DELETE /marketplace/{id} - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, marketplace.ErrAccessDenied):
			h.logger.Warn("DELETE /marketplace/{id} - Access denied: listing_id=%d, user_id=%d", listingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /marketplace/{id} - Failed to delete listing: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /marketplace/{id} - Listing deleted successfully: listing_id=%d", listingID)
	handlers.RespondNoContent(w)
}

// CreateOrder POST /api/v1/marketplace/{listingId}/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.ParseID(r, "listingId")
	if err != nil {
		h.logger.Warn("POST /marketplace/{id}/orders - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /marketplace/{id}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), actor, listingID)
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrListingNotFound):
			h.logger.Warn("POST /marketplace/{id}/orders - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, marketplace.ErrOwnListing):
			h.logger.Warn("POST /marketplace/{id}/orders - Own listing: listing_id=%d, user_id=%d", listingID, actor.UserID)
			handlers.RespondBadRequest(w, msgOwnListing)

		default:
			h.logger.Error("POST /marketplace/{id}/orders - Failed to create order: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /marketplace/{id}/orders - Order created successfully: order_id=%d, buyer_id=%d", order.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, order)
}

// ListMyOrders GET /api/v1/orders
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /orders - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListMyOrders(r.Context(), actor, page)
	if err != nil {
		h.logger.Error("GET /orders - Failed to list orders: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetOrder GET /api/v1/orders/{orderId}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.ParseID(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	order, err := h.service.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, marketplace.ErrAccessDenied):
			h.logger.Warn("GET /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /orders/{id} - Failed to get order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus PATCH /api/v1/orders/{orderId}
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.ParseID(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), actor, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, marketplace.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, marketplace.ErrStatusTransition):
			h.logger.Warn("PATCH /orders/{id} - Status transition not allowed: order_id=%d, status=%s", orderID, req.Status)
			handlers.RespondBadRequest(w, msgStatusTransition)

		case errors.Is(err, marketplace.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /orders/{id} - Failed to update order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id} - Order status updated: order_id=%d, status=%s", orderID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
