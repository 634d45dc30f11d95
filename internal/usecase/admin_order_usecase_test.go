package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var later = testNow.Add(2 * time.Hour)

func newAdminOrderUC(orders *OrderRepoMock) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(orders, fixedClock{later}, zap.NewNop())
}

func strPtr(s string) *string { return &s }

// =====================
// List
// =====================

func TestAdminOrderUsecase_List(t *testing.T) {
	orders := new(OrderRepoMock)
	f := repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "pending"}
	orders.On("ListAdmin", mock.Anything, f).Return([]model.Order{
		sampleOrder("ORD-2", "u2", model.OrderStatusPending),
		sampleOrder("ORD-1", "u1", model.OrderStatusPending),
	}, int64(2), nil)

	out, err := newAdminOrderUC(orders).List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: " pending "})
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "ORD-2", out.Items[0].ID)
	orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_List_Validation(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminOrderUC(orders)
	ctx := context.Background()

	_, err := uc.List(ctx, repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid page")

	_, err = uc.List(ctx, repo.AdminOrderListFilter{Page: 1, Limit: 101})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")

	_, err = uc.List(ctx, repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "lost"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")

	orders.AssertNotCalled(t, "ListAdmin", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_List_DBError(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("ListAdmin", mock.Anything, mock.Anything).Return(nil, int64(0), errDB)

	_, err := newAdminOrderUC(orders).List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20})
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}

// =====================
// UpdateStatus
// =====================

func TestAdminOrderUsecase_UpdateStatus_Success(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-1").Return(sampleOrder("ORD-1", "u1", model.OrderStatusPending), nil)
	paid := model.PaymentStatusPaid
	orders.On("UpdateStatus", mock.Anything, "ORD-1", model.OrderStatusProcessing, &paid, later).Return(nil)

	out, err := newAdminOrderUC(orders).UpdateStatus(context.Background(), "admin-1", "ORD-1",
		usecase.AdminUpdateOrderStatusInput{Status: "processing", PaymentStatus: strPtr("paid")})
	require.NoError(t, err)

	assert.Equal(t, "processing", out.Status)
	assert.Equal(t, "paid", out.PaymentStatus)
	assert.Equal(t, later, out.UpdatedAt)
	assert.Equal(t, testNow, out.CreatedAt)
	orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_NoChangeIsNoop(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-1").Return(sampleOrder("ORD-1", "u1", model.OrderStatusShipped), nil)

	out, err := newAdminOrderUC(orders).UpdateStatus(context.Background(), "admin-1", "ORD-1",
		usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	require.NoError(t, err)

	assert.Equal(t, "shipped", out.Status)
	assert.Equal(t, testNow, out.UpdatedAt)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_TerminalGuard(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-C").Return(sampleOrder("ORD-C", "u1", model.OrderStatusCancelled), nil)
	uc := newAdminOrderUC(orders)

	_, err := uc.UpdateStatus(context.Background(), "admin-1", "ORD-C",
		usecase.AdminUpdateOrderStatusInput{Status: "processing"})
	assertHTTPError(t, err, http.StatusBadRequest, "cannot change cancelled order")
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_PaymentOnlyOnTerminalOrder(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-C").Return(sampleOrder("ORD-C", "u1", model.OrderStatusCancelled), nil)
	refunded := model.PaymentStatusRefunded
	orders.On("UpdateStatus", mock.Anything, "ORD-C", model.OrderStatusCancelled, &refunded, later).Return(nil)

	out, err := newAdminOrderUC(orders).UpdateStatus(context.Background(), "admin-1", "ORD-C",
		usecase.AdminUpdateOrderStatusInput{Status: "cancelled", PaymentStatus: strPtr("refunded")})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", out.Status)
	assert.Equal(t, "refunded", out.PaymentStatus)
	orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_Validation(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-404").Return(model.Order{}, repo.ErrNotFound)
	uc := newAdminOrderUC(orders)
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, "", "ORD-1", usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")

	_, err = uc.UpdateStatus(ctx, "admin-1", "ORD-1", usecase.AdminUpdateOrderStatusInput{Status: "lost"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")

	_, err = uc.UpdateStatus(ctx, "admin-1", "ORD-1", usecase.AdminUpdateOrderStatusInput{Status: "shipped", PaymentStatus: strPtr("maybe")})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid payment_status")

	_, err = uc.UpdateStatus(ctx, "admin-1", "ORD-404", usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

func TestAdminOrderUsecase_UpdateStatus_RepoError(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "ORD-1").Return(sampleOrder("ORD-1", "u1", model.OrderStatusPending), nil)
	orders.On("UpdateStatus", mock.Anything, "ORD-1", model.OrderStatusShipped, mock.Anything, later).Return(errDB)

	_, err := newAdminOrderUC(orders).UpdateStatus(context.Background(), "admin-1", "ORD-1",
		usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}
