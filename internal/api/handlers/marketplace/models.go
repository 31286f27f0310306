package marketplace

import "github.com/m04kA/SMC-SoundInkube/internal/service/marketplace/models"

// CreateListingRequest HTTP запрос на создание объявления
type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,max=100"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

// UpdateListingRequest HTTP запрос частичного обновления объявления
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// UpdateOrderStatusRequest HTTP запрос на смену статуса заказа
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

func (r *CreateListingRequest) toServiceRequest() *models.CreateListingRequest {
	return &models.CreateListingRequest{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Images:      r.Images,
	}
}

func (r *UpdateListingRequest) toServiceRequest() *models.UpdateListingRequest {
	return &models.UpdateListingRequest{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Images:      r.Images,
	}
}
