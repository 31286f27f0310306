package marketplace

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/marketplace/models"
)

type MarketplaceService interface {
	CreateListing(ctx context.Context, actor domain.Actor, req *models.CreateListingRequest) (*models.ListingResponse, error)
	GetListing(ctx context.Context, id int64) (*models.ListingResponse, error)
	ListListings(ctx context.Context, req *models.ListListingsRequest) (*models.ListingListResponse, error)
	UpdateListing(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateListingRequest) (*models.ListingResponse, error)
	DeleteListing(ctx context.Context, actor domain.Actor, id int64) error

	CreateOrder(ctx context.Context, actor domain.Actor, listingID int64) (*models.OrderResponse, error)
	GetOrder(ctx context.Context, actor domain.Actor, id int64) (*models.OrderResponse, error)
	ListMyOrders(ctx context.Context, actor domain.Actor, page domain.Page) (*models.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, actor domain.Actor, id int64, status domain.OrderStatus) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
