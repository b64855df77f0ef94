// Package pricing holds the pluggable price calculation strategies applied
// to an order subtotal before it is charged.
package pricing

import "github.com/shopspring/decimal"

// Strategy turns an order subtotal into a final amount.
type Strategy interface {
	Calculate(base decimal.Decimal) decimal.Decimal
}

// DefaultServiceFeeRate is the platform surcharge applied to every order.
var DefaultServiceFeeRate = decimal.NewFromFloat(0.05)

// ServiceFee adds a percentage surcharge on top of the subtotal.
type ServiceFee struct {
	Rate decimal.Decimal
}

func NewServiceFee() ServiceFee {
	return ServiceFee{Rate: DefaultServiceFeeRate}
}

func (s ServiceFee) Calculate(base decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(s.Rate))
}

// CouponDiscount subtracts a flat amount from the subtotal, once per order.
// The result never goes below zero.
type CouponDiscount struct {
	Amount decimal.Decimal
}

func (s CouponDiscount) Calculate(base decimal.Decimal) decimal.Decimal {
	result := base.Sub(s.Amount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}
