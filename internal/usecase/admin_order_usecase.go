package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"go.uber.org/zap"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	clock  Clock
	log    *zap.Logger
}

func NewAdminOrderUsecase(orders repo.OrderRepository, clock Clock, log *zap.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, clock: clock, log: log}
}

type AdminUpdateOrderStatusInput struct {
	Status        string
	PaymentStatus *string
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧（新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	f.Status = strings.TrimSpace(f.Status)
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{
		Items: toOrderOutputs(orders),
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}

// ステータス更新（cancelled / delivered は終端）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID string, orderID string, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if actorAdminUserID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var payment *model.PaymentStatus
	if in.PaymentStatus != nil {
		ps := model.PaymentStatus(strings.TrimSpace(*in.PaymentStatus))
		if !ps.Valid() {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
		payment = &ps
	}

	// 注文取得
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// すでに同じなら何もしない（200）
	statusChanged := o.Status != newStatus
	paymentChanged := payment != nil && *payment != o.PaymentStatus
	if !statusChanged && !paymentChanged {
		return toOrderOutput(o), nil
	}

	// 終端ガード（支払い状態だけの変更は通す）
	if statusChanged && o.Status.Terminal() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cannot change "+string(o.Status)+" order")
	}

	now := u.clock.Now()
	if err := u.orders.UpdateStatus(ctx, orderID, newStatus, payment, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("by", actorAdminUserID),
		zap.String("from", string(o.Status)),
		zap.String("to", string(newStatus)),
	)

	o.Status = newStatus
	if payment != nil {
		o.PaymentStatus = *payment
	}
	o.UpdatedAt = now
	return toOrderOutput(o), nil
}
