package domain

import "time"

// Listing объявление маркетплейса
type Listing struct {
	ID            int64
	OwnerID       int64
	Title         string
	Slug          string
	Description   string
	Price         float64
	Category      string
	Images        []string
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l *Listing) OwnerIDs() []int64 {
	return []int64{l.OwnerID}
}

func (l *Listing) IsPublic() bool {
	return true
}

// ListingFilter фильтр каталога и поиска
type ListingFilter struct {
	Query    *string
	Category *string
	OwnerID  *int64
	MinPrice *float64
	MaxPrice *float64
	Page     Page
}

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PurchasedStatuses статусы заказа, которые считаются состоявшейся покупкой (для отзывов)
var PurchasedStatuses = []OrderStatus{
	OrderPaid,
	OrderShipped,
	OrderDelivered,
}

// Order заказ по объявлению
type Order struct {
	ID        int64
	ListingID int64
	BuyerID   int64
	Amount    float64
	Status    OrderStatus

	// Продавец (join)
	SellerID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) OwnerIDs() []int64 {
	return []int64{o.BuyerID, o.SellerID}
}
