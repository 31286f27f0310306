package marketplace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	listingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/listing"
	orderRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/order"
	"github.com/m04kA/SMC-SoundInkube/internal/service/marketplace/models"
)

// Статусы, которые продавец выставляет вручную. PAID ставит только проведенный платеж
var sellerStatuses = map[domain.OrderStatus]bool{
	domain.OrderShipped:   true,
	domain.OrderDelivered: true,
	domain.OrderCancelled: true,
}

// Service сервис маркетплейса: объявления и заказы
type Service struct {
	listingRepo ListingRepository
	orderRepo   OrderRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса маркетплейса
func NewService(listingRepo ListingRepository, orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		listingRepo: listingRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// CreateListing создает объявление от имени вызывающего
func (s *Service) CreateListing(ctx context.Context, actor domain.Actor, req *models.CreateListingRequest) (*models.ListingResponse, error) {
	s.logger.Info("CreateListing: by user=%d title=%q", actor.UserID, req.Title)

	if strings.TrimSpace(req.Title) == "" || req.Price < 0 {
		return nil, fmt.Errorf("%w: title is required and price must be non-negative", ErrInvalidInput)
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		s.logger.Error("CreateListing: failed to generate slug: %v", err)
		return nil, fmt.Errorf("%w: CreateListing - slug: %w", ErrInternal, err)
	}

	listing, err := s.listingRepo.Create(ctx, &domain.Listing{
		OwnerID:     actor.UserID,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		s.logger.Error("CreateListing: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateListing - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateListing: successfully created listing id=%d slug=%s", listing.ID, listing.Slug)
	return models.FromDomainListing(listing), nil
}

// GetListing возвращает объявление
func (s *Service) GetListing(ctx context.Context, id int64) (*models.ListingResponse, error) {
	listing, err := s.getListing(ctx, id, "GetListing")
	if err != nil {
		return nil, err
	}
	return models.FromDomainListing(listing), nil
}

// ListListings каталог и поиск
func (s *Service) ListListings(ctx context.Context, req *models.ListListingsRequest) (*models.ListingListResponse, error) {
	page := req.Page.Normalize()

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}

	listings, err := s.listingRepo.List(ctx, domain.ListingFilter{
		Query:    req.Query,
		Category: req.Category,
		OwnerID:  req.OwnerID,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Page:     page,
	})
	if err != nil {
		s.logger.Error("ListListings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListListings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainListingList(listings, page), nil
}

// UpdateListing частично обновляет объявление (владелец или администратор)
func (s *Service) UpdateListing(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateListingRequest) (*models.ListingResponse, error) {
	s.logger.Info("UpdateListing: listing id=%d by user=%d", id, actor.UserID)

	listing, err := s.getListing(ctx, id, "UpdateListing")
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, listing).Write {
		s.logger.Warn("UpdateListing: access denied for user=%d to listing id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
		}
		listing.Price = *req.Price
	}
	if req.Category != nil {
		listing.Category = *req.Category
	}
	if req.Images != nil {
		listing.Images = req.Images
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		s.logger.Error("UpdateListing: repository error for listing id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateListing - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainListing(listing), nil
}

// DeleteListing удаляет объявление (владелец или администратор)
func (s *Service) DeleteListing(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteListing: listing id=%d by user=%d", id, actor.UserID)

	listing, err := s.getListing(ctx, id, "DeleteListing")
	if err != nil {
		return err
	}

	if !domain.Authorize(actor, listing).Write {
		s.logger.Warn("DeleteListing: access denied for user=%d to listing id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return ErrListingNotFound
		}
		s.logger.Error("DeleteListing: repository error for listing id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteListing - repository error: %w", ErrInternal, err)
	}

	return nil
}

// CreateOrder оформляет заказ на объявление. Сумма равна текущей цене объявления
func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, listingID int64) (*models.OrderResponse, error) {
	s.logger.Info("CreateOrder: listing id=%d by user=%d", listingID, actor.UserID)

	listing, err := s.getListing(ctx, listingID, "CreateOrder")
	if err != nil {
		return nil, err
	}

	if listing.OwnerID == actor.UserID {
		s.logger.Warn("CreateOrder: user=%d tried to order own listing id=%d", actor.UserID, listingID)
		return nil, ErrOwnListing
	}

	order, err := s.orderRepo.Create(ctx, &domain.Order{
		ListingID: listing.ID,
		BuyerID:   actor.UserID,
		Amount:    listing.Price,
		Status:    domain.OrderPending,
	})
	if err != nil {
		s.logger.Error("CreateOrder: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOrder - repository error: %w", ErrInternal, err)
	}
	order.SellerID = listing.OwnerID

	s.logger.Info("CreateOrder: successfully created order id=%d", order.ID)
	return models.FromDomainOrder(order), nil
}

// GetOrder возвращает заказ покупателю, продавцу или администратору
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, id int64) (*models.OrderResponse, error) {
	order, err := s.getOrder(ctx, id, "GetOrder")
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, order).Read {
		s.logger.Warn("GetOrder: access denied for user=%d to order id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// ListMyOrders заказы, где вызывающий покупатель или продавец
func (s *Service) ListMyOrders(ctx context.Context, actor domain.Actor, page domain.Page) (*models.OrderListResponse, error) {
	page = page.Normalize()

	orders, err := s.orderRepo.ListByUser(ctx, actor.UserID, page)
	if err != nil {
		s.logger.Error("ListMyOrders: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListMyOrders - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainOrderList(orders, page), nil
}

// UpdateOrderStatus меняет статус заказа (продавец или администратор).
// DELIVERED и CANCELLED - конечные статусы
func (s *Service) UpdateOrderStatus(ctx context.Context, actor domain.Actor, id int64, status domain.OrderStatus) (*models.OrderResponse, error) {
	s.logger.Info("UpdateOrderStatus: order id=%d to %s by user=%d", id, status, actor.UserID)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if !sellerStatuses[status] {
		s.logger.Warn("UpdateOrderStatus: status %s cannot be set manually", status)
		return nil, ErrStatusTransition
	}

	order, err := s.getOrder(ctx, id, "UpdateOrderStatus")
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && actor.UserID != order.SellerID {
		s.logger.Warn("UpdateOrderStatus: access denied for user=%d to order id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if order.Status == domain.OrderDelivered || order.Status == domain.OrderCancelled {
		s.logger.Warn("UpdateOrderStatus: order id=%d is already %s", id, order.Status)
		return nil, ErrStatusTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("UpdateOrderStatus: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateOrderStatus - repository error: %w", ErrInternal, err)
	}
	order.Status = status

	return models.FromDomainOrder(order), nil
}

func (s *Service) getListing(ctx context.Context, id int64, op string) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			s.logger.Warn("%s: listing id=%d not found", op, id)
			return nil, ErrListingNotFound
		}
		s.logger.Error("%s: repository error for listing id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return listing, nil
}

func (s *Service) getOrder(ctx context.Context, id int64, op string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", op, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return order, nil
}
