package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Yash24242424/cloneverse-express/internal/cart"
	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/infra/slot"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockSlot struct{ mock.Mock }

func (m *mockSlot) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockSlot) Set(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *mockSlot) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestPersistence_LoadNotFound(t *testing.T) {
	p := cart.NewPersistence(slot.NewMemorySlot(), zap.NewNop())

	c, ok := p.Load(context.Background(), "guest:none")

	assert.False(t, ok)
	assert.Empty(t, c.Items)
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := cart.NewPersistence(slot.NewMemorySlot(), zap.NewNop())
	want := model.Cart{Items: []model.LineItem{
		{ProductID: "1", UnitPrice: dec("199.99"), Quantity: 2, Name: "AirBeam Pro"},
		{ProductID: "7", UnitPrice: dec("0"), Quantity: 1},
	}}

	p.Save(ctx, "user:u1", want)
	got, ok := p.Load(ctx, "user:u1")

	require.True(t, ok)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "1", got.Items[0].ProductID)
	assert.True(t, want.Items[0].UnitPrice.Equal(got.Items[0].UnitPrice))
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.Equal(t, "AirBeam Pro", got.Items[0].Name)
	assert.Equal(t, "7", got.Items[1].ProductID)
}

func TestPersistence_MalformedSnapshotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemorySlot()
	log, logs := observedLogger()
	p := cart.NewPersistence(s, log)

	require.NoError(t, s.Set(ctx, "guest:g1", []byte("{not json")))

	c, ok := p.Load(ctx, "guest:g1")

	assert.False(t, ok)
	assert.Empty(t, c.Items)

	_, err := s.Get(ctx, "guest:g1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "discarding malformed cart snapshot", warns[0].Message)
}

func TestPersistence_InvalidQuantityInSnapshotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemorySlot()
	p := cart.NewPersistence(s, zap.NewNop())

	raw := []byte(`{"version":1,"items":[{"productId":"1","unitPrice":"10","quantity":0}]}`)
	require.NoError(t, s.Set(ctx, "user:u1", raw))

	_, ok := p.Load(ctx, "user:u1")
	assert.False(t, ok)
}

func TestPersistence_BackendReadErrorLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	m := new(mockSlot)
	log, logs := observedLogger()
	p := cart.NewPersistence(m, log)

	m.On("Get", mock.Anything, "user:u1").Return(nil, errors.New("connection refused"))

	_, ok := p.Load(ctx, "user:u1")

	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	// 読めないだけのときは消さない
	m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPersistence_SaveFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	m := new(mockSlot)
	log, logs := observedLogger()
	p := cart.NewPersistence(m, log)

	m.On("Set", mock.Anything, "user:u1", mock.Anything).Return(errors.New("disk full"))

	assert.NotPanics(t, func() {
		p.Save(ctx, "user:u1", model.Cart{Items: []model.LineItem{{ProductID: "1", UnitPrice: dec("1"), Quantity: 1}}})
	})
	assert.Equal(t, 1, logs.FilterMessage("cart slot write failed").Len())
	m.AssertExpectations(t)
}

func TestCart_KeepsWorkingWhenSlotFails(t *testing.T) {
	ctx := context.Background()
	m := new(mockSlot)
	m.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	m.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down"))

	p := cart.NewPersistence(m, zap.NewNop())
	c := cart.Open(ctx, "user:u1", pricing.DefaultPolicy(), p)

	require.NoError(t, c.AddItem(ctx, ref("A", "10"), 2))
	assert.Equal(t, int64(2), c.Snapshot().Items[0].Quantity)
}
