package usecase

import (
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"
)

type OrderItemOutput struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	Total       string `json:"total"`
}

type OrderOutput struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Items           []OrderItemOutput     `json:"items"`
	Subtotal        string                `json:"subtotal"`
	Tax             string                `json:"tax"`
	Shipping        string                `json:"shipping"`
	Total           string                `json:"total"`
	Status          string                `json:"status"`
	PaymentMethod   string                `json:"payment_method"`
	PaymentStatus   string                `json:"payment_status"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       pricing.Format(it.Price),
			Quantity:    it.Quantity,
			Total:       pricing.Format(it.Total),
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        pricing.Format(o.Subtotal),
		Tax:             pricing.Format(o.Tax),
		Shipping:        pricing.Format(o.Shipping),
		Total:           pricing.Format(o.Total),
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   string(o.PaymentStatus),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs
}
