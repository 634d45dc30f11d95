package handler

import (
	"net/http"

	"github.com/Yash24242424/cloneverse-express/internal/config"
	"github.com/Yash24242424/cloneverse-express/internal/middleware"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /checkout（ゲストも可）
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type ShippingAddressRequest struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// カード情報は保存しない
type PaymentRequest struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	Payment         PaymentRequest         `json:"payment"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/checkout", h.checkout, middleware.CartSession(cfg))
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// ゲストはuserIDが空
	userID, _ := getUserIDFromContext(c)

	out, err := h.uc.PlaceOrder(c.Request().Context(), key, userID, usecase.CheckoutInput{
		Address: usecase.ShippingAddressInput{
			Name:    req.ShippingAddress.Name,
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Country: req.ShippingAddress.Country,
		},
		Payment: usecase.PaymentInput{
			CardName:   req.Payment.CardName,
			CardNumber: req.Payment.CardNumber,
			Expiry:     req.Payment.Expiry,
			CVV:        req.Payment.CVV,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
