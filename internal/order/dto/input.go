package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type CheckoutInput struct {
	SessionID     string
	Payment       model.PaymentInfo
	CustomerName  string
	CustomerEmail string
}
