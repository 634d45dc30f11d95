package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Yash24242424/cloneverse-express/internal/cart"
	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/validator"

	"go.uber.org/zap"
)

// 決済処理はしない。支払い方法の表示名だけ残す。
const PaymentMethodCard = "Credit Card"

type CheckoutUsecase struct {
	carts  *cart.Registry
	orders repo.OrderRepository
	idGen  IDGenerator
	clock  Clock
	log    *zap.Logger
}

// DI
func NewCheckoutUsecase(carts *cart.Registry, orders repo.OrderRepository, idGen IDGenerator, clock Clock, log *zap.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:  carts,
		orders: orders,
		idGen:  idGen,
		clock:  clock,
		log:    log,
	}
}

type ShippingAddressInput struct {
	Name    string
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// カード情報は存在チェックのみ（保存しない）
type PaymentInput struct {
	CardName   string
	CardNumber string
	Expiry     string
	CVV        string
}

type CheckoutInput struct {
	Address ShippingAddressInput
	Payment PaymentInput
}

// PlaceOrder turns the session's cart into a pending order. The cart is
// cleared only after the order has been stored.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, cartKey string, userID string, in CheckoutInput) (OrderOutput, error) {
	if cartKey == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	addr, err := validateAddress(in.Address)
	if err != nil {
		return OrderOutput{}, err
	}
	if err := validatePayment(in.Payment); err != nil {
		return OrderOutput{}, err
	}
	if userID == "" {
		userID = model.GuestUserID
	}

	var out OrderOutput
	err = u.carts.With(ctx, cartKey, func(c *cart.Cart) error {
		return c.Drain(ctx, func(snap model.Cart, totals model.Totals) error {
			if snap.IsEmpty() {
				return NewHTTPError(http.StatusBadRequest, "cart is empty")
			}

			//スナップショット
			items := make([]model.OrderItem, 0, len(snap.Items))
			for _, it := range snap.Items {
				items = append(items, model.OrderItem{
					ProductID:   it.ProductID,
					ProductName: it.Name,
					Price:       it.UnitPrice,
					Quantity:    it.Quantity,
					Total:       pricing.Round2(it.LineTotal()),
				})
			}

			now := u.clock.Now()
			order := model.Order{
				ID:              newOrderID(u.idGen.NewID()),
				UserID:          userID,
				Items:           items,
				Subtotal:        pricing.Round2(totals.Subtotal),
				Tax:             pricing.Round2(totals.Tax),
				Shipping:        pricing.Round2(totals.Shipping),
				Total:           pricing.Round2(totals.Total),
				Status:          model.OrderStatusPending,
				PaymentMethod:   PaymentMethodCard,
				PaymentStatus:   model.PaymentStatusPending,
				ShippingAddress: addr,
				CreatedAt:       now,
				UpdatedAt:       now,
			}

			if err := u.orders.Create(ctx, order); err != nil {
				u.log.Error("order create failed", zap.String("cart", cartKey), zap.Error(err))
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			u.log.Info("order placed",
				zap.String("order_id", order.ID),
				zap.String("user_id", userID),
				zap.String("total", pricing.Format(order.Total)),
			)
			out = toOrderOutput(order)
			return nil
		})
	})
	if err != nil {
		return OrderOutput{}, err
	}
	// 空になったカートはメモリから外す
	u.carts.Forget(cartKey)
	return out, nil
}

func validateAddress(in ShippingAddressInput) (model.ShippingAddress, error) {
	addr := model.ShippingAddress{
		Name:    strings.TrimSpace(in.Name),
		Street:  strings.TrimSpace(in.Street),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		ZipCode: strings.TrimSpace(in.ZipCode),
		Country: strings.TrimSpace(in.Country),
	}
	if !validator.Required(addr.Name, addr.Street, addr.City, addr.ZipCode, addr.Country) {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "shipping address incomplete")
	}
	return addr, nil
}

func validatePayment(in PaymentInput) error {
	if !validator.Required(in.CardName, in.CardNumber, in.Expiry, in.CVV) {
		return NewHTTPError(http.StatusBadRequest, "payment details incomplete")
	}
	return nil
}

// ORD- + 大文字16進12桁
func newOrderID(raw string) string {
	id := strings.ToUpper(strings.ReplaceAll(raw, "-", ""))
	if len(id) > 12 {
		id = id[:12]
	}
	return "ORD-" + id
}
