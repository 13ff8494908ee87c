package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type recordingCarts struct {
	cart.UseCase
	calls int
	err   error
}

func (r *recordingCarts) ReconcileAll(context.Context) error {
	r.calls++
	return r.err
}

func TestInventoryListener(t *testing.T) {
	carts := &recordingCarts{}
	bus := event.NewBus()
	NewInventoryListener(carts, logger.NewNop()).Register(bus)

	bus.Fire(context.Background(), model.EventInventoryChanged, model.InventoryChanged{ProductID: "1", Stock: 3})
	assert.Equal(t, 1, carts.calls)

	bus.Fire(context.Background(), model.EventInventoryChanged, "garbage")
	assert.Equal(t, 1, carts.calls)

	carts.err = errors.New("db gone")
	assert.NotPanics(t, func() {
		bus.Fire(context.Background(), model.EventInventoryChanged, model.InventoryChanged{ProductID: "1"})
	})
	assert.Equal(t, 2, carts.calls)
}
