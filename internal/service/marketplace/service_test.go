package marketplace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	listingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/listing"
	orderRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/order"
	"github.com/m04kA/SMC-SoundInkube/internal/service/marketplace/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
	"github.com/m04kA/SMC-SoundInkube/pkg/ptr"
)

type memListings struct {
	items map[int64]*domain.Listing
}

func (m *memListings) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	l.ID = int64(len(m.items) + 1)
	m.items[l.ID] = l
	return l, nil
}

func (m *memListings) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	l, ok := m.items[id]
	if !ok {
		return nil, listingRepo.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memListings) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, l := range m.items {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memListings) List(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	return nil, nil
}

func (m *memListings) Update(ctx context.Context, l *domain.Listing) error {
	m.items[l.ID] = l
	return nil
}

func (m *memListings) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

type memOrders struct {
	items map[int64]*domain.Order
}

func (m *memOrders) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	o.ID = int64(len(m.items) + 1)
	m.items[o.ID] = o
	return o, nil
}

func (m *memOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.items {
		if o.BuyerID == userID || o.SellerID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	m.items[id].Status = status
	return nil
}

func newService() (*Service, *memListings, *memOrders) {
	listings := &memListings{items: map[int64]*domain.Listing{}}
	orders := &memOrders{items: map[int64]*domain.Order{}}
	return NewService(listings, orders, logger.NewDiscard()), listings, orders
}

var seller = domain.Actor{UserID: 20, Role: domain.RoleMusicProfessional}
var buyer = domain.Actor{UserID: 30, Role: domain.RoleClient}

func TestCreateListing_UniqueSlug(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	first, err := svc.CreateListing(ctx, seller, &models.CreateListingRequest{Title: "Fender Stratocaster 1998", Price: 900})
	require.NoError(t, err)
	assert.Equal(t, "fender-stratocaster-1998", first.Slug)

	second, err := svc.CreateListing(ctx, seller, &models.CreateListingRequest{Title: "Fender Stratocaster 1998", Price: 950})
	require.NoError(t, err)
	assert.Equal(t, "fender-stratocaster-1998-1", second.Slug)

	_, err = svc.CreateListing(ctx, seller, &models.CreateListingRequest{Title: "  ", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateListing_OwnerOnly(t *testing.T) {
	svc, listings, _ := newService()
	ctx := context.Background()
	created, err := svc.CreateListing(ctx, seller, &models.CreateListingRequest{Title: "Amp", Price: 100})
	require.NoError(t, err)

	_, err = svc.UpdateListing(ctx, buyer, created.ID, &models.UpdateListingRequest{Price: ptr.Ptr(1.0)})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 100.0, listings.items[created.ID].Price)

	resp, err := svc.UpdateListing(ctx, seller, created.ID, &models.UpdateListingRequest{Title: ptr.Ptr("Tube Amp")})
	require.NoError(t, err)
	assert.Equal(t, "Tube Amp", resp.Title)
	assert.Equal(t, "amp", resp.Slug)
}

func TestCreateOrder(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	listing, err := svc.CreateListing(ctx, seller, &models.CreateListingRequest{Title: "Drum kit", Price: 400})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, seller, listing.ID)
	assert.ErrorIs(t, err, ErrOwnListing)

	order, err := svc.CreateOrder(ctx, buyer, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, order.Amount)
	assert.Equal(t, seller.UserID, order.SellerID)
	assert.Equal(t, string(domain.OrderPending), order.Status)

	_, err = svc.CreateOrder(ctx, buyer, 999)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, _, orders := newService()
	ctx := context.Background()
	orders.items[1] = &domain.Order{ID: 1, ListingID: 1, BuyerID: buyer.UserID, SellerID: seller.UserID, Status: domain.OrderPaid}

	_, err := svc.UpdateOrderStatus(ctx, seller, 1, domain.OrderPaid)
	assert.ErrorIs(t, err, ErrStatusTransition)

	_, err = svc.UpdateOrderStatus(ctx, buyer, 1, domain.OrderShipped)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.UpdateOrderStatus(ctx, seller, 1, domain.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderShipped), resp.Status)

	_, err = svc.UpdateOrderStatus(ctx, seller, 1, domain.OrderDelivered)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1, domain.OrderCancelled)
	assert.ErrorIs(t, err, ErrStatusTransition)
}

func TestGetOrder_Visibility(t *testing.T) {
	svc, _, orders := newService()
	orders.items[1] = &domain.Order{ID: 1, BuyerID: buyer.UserID, SellerID: seller.UserID, Status: domain.OrderPending}
	ctx := context.Background()

	_, err := svc.GetOrder(ctx, buyer, 1)
	assert.NoError(t, err)
	_, err = svc.GetOrder(ctx, seller, 1)
	assert.NoError(t, err)
	_, err = svc.GetOrder(ctx, domain.Actor{UserID: 99, Role: domain.RoleClient}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
