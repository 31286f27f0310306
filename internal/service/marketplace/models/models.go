package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// CreateListingRequest запрос на создание объявления
type CreateListingRequest struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Images      []string
}

// UpdateListingRequest частичное обновление объявления
type UpdateListingRequest struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Images      []string
}

// ListListingsRequest каталог и поиск объявлений
type ListListingsRequest struct {
	Query    *string
	Category *string
	OwnerID  *int64
	MinPrice *float64
	MaxPrice *float64
	Page     domain.Page
}

// Response модели

// ListingResponse ответ с данными объявления
type ListingResponse struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"ownerId"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	Images        []string  `json:"images"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListingListResponse ответ со списком объявлений
type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Skip     int               `json:"skip"`
	Take     int               `json:"take"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listingId"`
	BuyerID   int64     `json:"buyerId"`
	SellerID  int64     `json:"sellerId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Skip   int             `json:"skip"`
	Take   int             `json:"take"`
}

// FromDomainListing конвертирует domain модель в DTO
func FromDomainListing(l *domain.Listing) *ListingResponse {
	if l == nil {
		return nil
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return &ListingResponse{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		Title:         l.Title,
		Slug:          l.Slug,
		Description:   l.Description,
		Price:         l.Price,
		Category:      l.Category,
		Images:        images,
		AverageRating: l.AverageRating,
		TotalReviews:  l.TotalReviews,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// FromDomainListingList конвертирует список объявлений
func FromDomainListingList(listings []*domain.Listing, page domain.Page) *ListingListResponse {
	resp := &ListingListResponse{
		Listings: make([]ListingResponse, 0, len(listings)),
		Skip:     page.Skip,
		Take:     page.Take,
	}
	for _, l := range listings {
		resp.Listings = append(resp.Listings, *FromDomainListing(l))
	}
	return resp
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:        o.ID,
		ListingID: o.ListingID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Amount:    o.Amount,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// FromDomainOrderList конвертирует список заказов
func FromDomainOrderList(orders []*domain.Order, page domain.Page) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Skip:   page.Skip,
		Take:   page.Take,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}
