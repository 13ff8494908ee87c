package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/gateway"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

type orderUseCase struct {
	repo     order.Repository
	carts    cart.UseCase
	payments gateway.PaymentGateway
	logger   logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, carts cart.UseCase, payments gateway.PaymentGateway, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		carts:    carts,
		payments: payments,
		logger:   log,
	}
}

func normalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// ValidatePayment checks the card fields for shape only.
func ValidatePayment(p model.PaymentInfo) error {
	verr := model.NewValidationError()

	if strings.TrimSpace(p.CardholderName) == "" {
		verr.Add("cardholder_name", "Please enter the cardholder name")
	}
	if !cardNumberPattern.MatchString(normalizeCardNumber(p.CardNumber)) {
		verr.Add("card_number", "Please enter a valid 16-digit card number")
	}
	if !expiryPattern.MatchString(p.ExpiryDate) {
		verr.Add("expiry_date", "Please enter expiry as MM/YY")
	}
	if !cvvPattern.MatchString(p.CVV) {
		verr.Add("cvv", "Please enter a valid 3-digit CVV")
	}

	return verr.OrNil()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Order, error) {
	// 1. Validate payment details
	if err := ValidatePayment(input.Payment); err != nil {
		return nil, err
	}

	// 2. Bring the cart in line with current stock and snapshot it
	view, err := uc.carts.Reconcile(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	lines := view.Items
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}
	totals := cart.ComputeTotals(lines)

	// 3. Charge the card. From here on the checkout completes even if the
	// caller goes away.
	ctx = context.WithoutCancel(ctx)
	orderID := "ORD-" + uuid.New().String()
	receipt, err := uc.payments.Charge(ctx, &gateway.PaymentRequest{
		OrderID: orderID,
		Amount:  totals.Total,
		Card:    input.Payment,
	})
	if err != nil {
		uc.logger.Warn("Checkout payment failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", model.ErrPaymentDeclined, err)
	}

	// 4. Record the order
	card := normalizeCardNumber(input.Payment.CardNumber)
	o := &model.Order{
		ID:            orderID,
		Items:         lines,
		Total:         totals.Subtotal,
		Status:        model.OrderStatusPending,
		Date:          time.Now(),
		PaymentMethod: "**** " + card[len(card)-4:],
		CustomerName:  optional(input.CustomerName),
		CustomerEmail: optional(input.CustomerEmail),
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		uc.logger.Error("Failed to record paid order",
			zap.String("order_id", orderID),
			zap.String("payment_reference", receipt.Reference),
			zap.Error(err),
		)
		return nil, err
	}

	// 5. Empty the cart
	if err := uc.carts.ClearCart(ctx, input.SessionID); err != nil {
		return nil, err
	}

	uc.logger.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("session_id", input.SessionID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("charged", receipt.Amount.StringFixed(2)),
		zap.String("payment_method", o.PaymentMethod),
	)
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.ErrOrderNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters == nil {
		filters = &dto.OrderFilters{}
	}

	f := *filters
	switch {
	case f.Status == "" || strings.EqualFold(string(f.Status), "all"):
		f.Status = ""
	case !f.Status.Valid():
		return nil, 0, model.ErrInvalidStatusFilter
	}

	return uc.repo.FindAll(ctx, &f)
}
