package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/grpcerr"
	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	"google.golang.org/grpc/status"
)

const managerSession = "backoffice"

type storefrontFeature struct {
	h       *harness
	stop    func()
	shopper string
	lastErr error
	orders  []*orderH.OrderPayload
	placed  *orderH.OrderPayload
}

func (f *storefrontFeature) reset() {
	if f.stop != nil {
		f.stop()
	}
	*f = storefrontFeature{}
}

func (f *storefrontFeature) shopperCtx() context.Context {
	return as(context.Background(), f.shopper, "")
}

func (f *storefrontFeature) managerCtx() context.Context {
	return as(context.Background(), managerSession, "Store Manager")
}

func (f *storefrontFeature) theStorefrontIsSeeded() error {
	h, stop, err := newHarness()
	if err != nil {
		return err
	}
	f.h, f.stop = h, stop
	return nil
}

func (f *storefrontFeature) iAmShopper(name string) error {
	f.shopper = name
	return nil
}

func (f *storefrontFeature) iAddOfProductToMyCart(quantity int, productID string) error {
	_, f.lastErr = call[cartH.CartResponse](f.shopperCtx(), f.h, cartH.ServiceName, "AddItem",
		&cartH.AddItemRequest{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *storefrontFeature) iRemoveProductFromMyCart(productID string) error {
	_, f.lastErr = call[cartH.CartResponse](f.shopperCtx(), f.h, cartH.ServiceName, "RemoveItem",
		&cartH.RemoveItemRequest{ProductID: productID})
	return nil
}

func (f *storefrontFeature) cart() (*cartH.CartResponse, error) {
	return call[cartH.CartResponse](f.shopperCtx(), f.h, cartH.ServiceName, "GetCart", &cartH.GetCartRequest{})
}

func (f *storefrontFeature) cartAmount(pick func(*cartH.CartResponse) string, label string) func(string) error {
	return func(want string) error {
		c, err := f.cart()
		if err != nil {
			return err
		}
		if got := pick(c); got != want {
			return fmt.Errorf("expected cart %s %s, got %s", label, want, got)
		}
		return nil
	}
}

func (f *storefrontFeature) myCartIsEmpty() error {
	c, err := f.cart()
	if err != nil {
		return err
	}
	if len(c.Items) != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", len(c.Items))
	}
	return nil
}

func (f *storefrontFeature) myCartHasOfProduct(quantity int, productID string) error {
	c, err := f.cart()
	if err != nil {
		return err
	}
	for _, line := range c.Items {
		if line.Product.ID == productID {
			if line.Quantity != quantity {
				return fmt.Errorf("expected %d of product %s, got %d", quantity, productID, line.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %s is not in the cart", productID)
}

func (f *storefrontFeature) myCartHasLines(n int) error {
	c, err := f.cart()
	if err != nil {
		return err
	}
	if len(c.Items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(c.Items))
	}
	return nil
}

func (f *storefrontFeature) theRequestFailsWith(code string) error {
	if f.lastErr == nil {
		return fmt.Errorf("expected %s, request succeeded", code)
	}
	if got := status.Code(f.lastErr).String(); got != code {
		return fmt.Errorf("expected %s, got %s (%v)", code, got, f.lastErr)
	}
	return nil
}

func (f *storefrontFeature) theManagerRecordsAnUpdate(reason, quantity, productID string) error {
	_, f.lastErr = call[invH.FlowResponse](f.managerCtx(), f.h, invH.ServiceName, "SubmitStockUpdate",
		&invH.SubmitStockUpdateRequest{
			ProductID: productID,
			Quantity:  quantity,
			Reason:    reason,
			Date:      "2024-03-25",
		})
	return nil
}

func (f *storefrontFeature) theManagerConfirmsTheUpdate() error {
	_, f.lastErr = call[invH.StockUpdateResponse](f.managerCtx(), f.h, invH.ServiceName, "ConfirmStockUpdate",
		&invH.ConfirmStockUpdateRequest{})
	return nil
}

func (f *storefrontFeature) theFieldSays(field, message string) error {
	got := grpcerr.FieldViolations(f.lastErr)[field]
	if got != message {
		return fmt.Errorf("expected %s to say %q, got %q", field, message, got)
	}
	return nil
}

func (f *storefrontFeature) productHasInStock(productID string, stock int) error {
	resp, err := call[prodH.ProductResponse](context.Background(), f.h, prodH.ServiceName, "GetProduct",
		&prodH.GetProductRequest{ID: productID})
	if err != nil {
		return err
	}
	if resp.Product.Stock != stock {
		return fmt.Errorf("expected stock %d, got %d", stock, resp.Product.Stock)
	}
	return nil
}

func (f *storefrontFeature) ledger(productID string) (*invH.ListStockUpdatesResponse, error) {
	return call[invH.ListStockUpdatesResponse](f.managerCtx(), f.h, invH.ServiceName, "ListStockUpdates",
		&invH.ListStockUpdatesRequest{ProductID: productID})
}

func (f *storefrontFeature) theLatestLedgerEntryReads(productID string, current, delta, next int) error {
	l, err := f.ledger(productID)
	if err != nil {
		return err
	}
	if len(l.Updates) == 0 {
		return fmt.Errorf("no ledger entries for product %s", productID)
	}
	u := l.Updates[0]
	if u.CurrentBalance != current || u.UpdateQuantity != delta || u.NewBalance != next {
		return fmt.Errorf("expected %d/%d/%d, got %d/%d/%d", current, delta, next, u.CurrentBalance, u.UpdateQuantity, u.NewBalance)
	}
	return nil
}

func (f *storefrontFeature) theLedgerHasEntries(productID string, n int) error {
	l, err := f.ledger(productID)
	if err != nil {
		return err
	}
	if l.Total != n {
		return fmt.Errorf("expected %d ledger entries, got %d", n, l.Total)
	}
	return nil
}

func (f *storefrontFeature) iCheckOutWithCard(number string) error {
	var resp *orderH.OrderResponse
	resp, f.lastErr = call[orderH.OrderResponse](f.shopperCtx(), f.h, orderH.ServiceName, "Checkout",
		&orderH.CheckoutRequest{
			CardholderName: "Bob Shopper",
			CardNumber:     number,
			ExpiryDate:     "11/28",
			CVV:            "321",
		})
	if f.lastErr == nil {
		f.placed = resp.Order
	}
	return nil
}

func (f *storefrontFeature) myLatestOrderIs(orderStatus, total, paidBy string) error {
	if f.placed == nil {
		return fmt.Errorf("no order was placed: %v", f.lastErr)
	}
	o := f.placed
	if o.Status != orderStatus || o.Total != total || o.PaymentMethod != paidBy {
		return fmt.Errorf("unexpected order %s: %s %s %s", o.ID, o.Status, o.Total, o.PaymentMethod)
	}
	return nil
}

func (f *storefrontFeature) iListOrdersWithStatus(orderStatus string) error {
	resp, err := call[orderH.ListOrdersResponse](f.shopperCtx(), f.h, orderH.ServiceName, "ListOrders",
		&orderH.ListOrdersRequest{Status: orderStatus})
	f.lastErr = err
	if err == nil {
		f.orders = resp.Orders
	}
	return nil
}

func (f *storefrontFeature) iSeeOrders(ids string) error {
	want := strings.Split(ids, ",")
	if len(want) != len(f.orders) {
		return fmt.Errorf("expected %d orders, got %d", len(want), len(f.orders))
	}
	for i, id := range want {
		if f.orders[i].ID != strings.TrimSpace(id) {
			return fmt.Errorf("expected order %s at %d, got %s", id, i, f.orders[i].ID)
		}
	}
	return nil
}

func initializeScenario(ctx *godog.ScenarioContext) {
	f := &storefrontFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the storefront is seeded$`, f.theStorefrontIsSeeded)
	ctx.Step(`^I am shopper "([^"]*)"$`, f.iAmShopper)

	// When steps
	ctx.Step(`^I add (\d+) of product "([^"]*)" to my cart$`, f.iAddOfProductToMyCart)
	ctx.Step(`^I remove product "([^"]*)" from my cart$`, f.iRemoveProductFromMyCart)
	ctx.Step(`^the store manager records a "([^"]*)" update of "([^"]*)" for product "([^"]*)"$`, f.theManagerRecordsAnUpdate)
	ctx.Step(`^the store manager confirms the update$`, f.theManagerConfirmsTheUpdate)
	ctx.Step(`^I check out with card "([^"]*)"$`, f.iCheckOutWithCard)
	ctx.Step(`^I list orders with status "([^"]*)"$`, f.iListOrdersWithStatus)

	// Then steps
	ctx.Step(`^my cart subtotal is "([^"]*)"$`, f.cartAmount(func(c *cartH.CartResponse) string { return c.Subtotal }, "subtotal"))
	ctx.Step(`^my cart tax is "([^"]*)"$`, f.cartAmount(func(c *cartH.CartResponse) string { return c.Tax }, "tax"))
	ctx.Step(`^my cart total is "([^"]*)"$`, f.cartAmount(func(c *cartH.CartResponse) string { return c.Total }, "total"))
	ctx.Step(`^my cart is empty$`, f.myCartIsEmpty)
	ctx.Step(`^my cart has (\d+) of product "([^"]*)"$`, f.myCartHasOfProduct)
	ctx.Step(`^my cart has (\d+) lines?$`, f.myCartHasLines)
	ctx.Step(`^the request fails with "([^"]*)"$`, f.theRequestFailsWith)
	ctx.Step(`^the "([^"]*)" field says "([^"]*)"$`, f.theFieldSays)
	ctx.Step(`^product "([^"]*)" has (\d+) in stock$`, f.productHasInStock)
	ctx.Step(`^the latest ledger entry for product "([^"]*)" reads (-?\d+) then (-?\d+) then (-?\d+)$`, f.theLatestLedgerEntryReads)
	ctx.Step(`^the ledger for product "([^"]*)" has (\d+) entr(?:y|ies)$`, f.theLedgerHasEntries)
	ctx.Step(`^my latest order is "([^"]*)" with total "([^"]*)" paid by "([^"]*)"$`, f.myLatestOrderIs)
	ctx.Step(`^I see orders "([^"]*)"$`, f.iSeeOrders)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
