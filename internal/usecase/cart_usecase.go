package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Yash24242424/cloneverse-express/internal/cart"
	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/validator"
)

// ゲストカートのキー接頭辞
const (
	GuestKeyPrefix = "guest:"
	UserKeyPrefix  = "user:"
)

type CartUsecase struct {
	carts    *cart.Registry
	products repo.ProductRepository
	idGen    IDGenerator
}

// DI
func NewCartUsecase(carts *cart.Registry, products repo.ProductRepository, idGen IDGenerator) *CartUsecase {
	return &CartUsecase{carts: carts, products: products, idGen: idGen}
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type CartItemOutput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Brand     string `json:"brand,omitempty"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// 金額は小数2桁の文字列
type CartOutput struct {
	Items      []CartItemOutput `json:"items"`
	Subtotal   string           `json:"subtotal"`
	Tax        string           `json:"tax"`
	Shipping   string           `json:"shipping"`
	Total      string           `json:"total"`
	TotalItems int64            `json:"total_items"`
}

type CartSessionOutput struct {
	SessionID string `json:"session_id"`
}

// POST /cart/session（ゲスト用）
func (u *CartUsecase) NewSession() CartSessionOutput {
	return CartSessionOutput{SessionID: u.idGen.NewID()}
}

func (u *CartUsecase) GetCart(ctx context.Context, cartKey string) (CartOutput, error) {
	if cartKey == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var out CartOutput
	err := u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		out = toCartOutput(c.View())
		return nil
	})
	return out, err
}

// 価格はカタログから取り、カートに入れた時点で確定
func (u *CartUsecase) AddToCart(ctx context.Context, cartKey string, in AddCartInput) (CartOutput, error) {
	if cartKey == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if in.Quantity > validator.MaxQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity too large")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out CartOutput
	err = u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		if err := c.AddItemCapped(ctx, cart.RefFromProduct(p), in.Quantity, validator.MaxQuantity); err != nil {
			return cartError(err)
		}
		out = toCartOutput(c.View())
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 0以下は削除扱い、上限超えは400
func (u *CartUsecase) UpdateCartItem(ctx context.Context, cartKey string, productID string, quantity int64) (CartOutput, error) {
	if cartKey == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if quantity > validator.MaxQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity too large")
	}

	var out CartOutput
	err := u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		c.UpdateQuantity(ctx, productID, quantity)
		out = toCartOutput(c.View())
		return nil
	})
	return out, err
}

func (u *CartUsecase) DeleteCartItem(ctx context.Context, cartKey string, productID string) (CartOutput, error) {
	if cartKey == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var out CartOutput
	err := u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		c.RemoveItem(ctx, productID)
		out = toCartOutput(c.View())
		return nil
	})
	return out, err
}

func (u *CartUsecase) ClearCart(ctx context.Context, cartKey string) (CartOutput, error) {
	if cartKey == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var out CartOutput
	err := u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		c.Clear(ctx)
		out = toCartOutput(c.View())
		return nil
	})
	return out, err
}

func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, cart.ErrQuantityTooLarge):
		return NewHTTPError(http.StatusBadRequest, "quantity too large")
	case errors.Is(err, cart.ErrInvalidProduct):
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	case errors.Is(err, cart.ErrInvalidPrice):
		return NewHTTPError(http.StatusUnprocessableEntity, "invalid product price")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}

func toCartOutput(c model.Cart, t model.Totals) CartOutput {
	items := make([]CartItemOutput, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemOutput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Brand:     it.Brand,
			UnitPrice: pricing.Format(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: pricing.Format(it.LineTotal()),
		})
	}
	return CartOutput{
		Items:      items,
		Subtotal:   pricing.Format(t.Subtotal),
		Tax:        pricing.Format(t.Tax),
		Shipping:   pricing.Format(t.Shipping),
		Total:      pricing.Format(t.Total),
		TotalItems: t.TotalItemCount,
	}
}
