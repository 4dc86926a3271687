package ordergroup

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPriceIsNotConstructed indicates that a Price was not created through NewPrice.
var ErrPriceIsNotConstructed = errors.New("Price must be created via NewPrice constructor")

// maxPriceAmount caps the amount a single service can be priced at,
// in minor currency units.
const maxPriceAmount = int64(1_000_000_000)

// Price is the immutable price snapshot captured on a service when it is
// created. It records what the requester agreed to pay at placement time,
// so later catalog changes never affect an existing order.
//
// Price plays no role in status aggregation; it is carried on the service
// for reporting and event payloads only.
type Price struct {
	// amount is the price in minor currency units (e.g. cents)
	amount int64

	// currency is the ISO 4217 alphabetic code
	currency string

	guard guard.ConstructorGuard
}

// NewPrice creates a validated price snapshot.
// Amount is in minor units and must be within [0, maxPriceAmount];
// currency must be a three-letter code.
func NewPrice(amount int64, currency string) (Price, error) {
	p := Price{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setAmount(amount),
		p.setCurrency(currency),
	); err != nil {
		return Price{}, err
	}

	return p, nil
}

// Validate ensures the Price was created through NewPrice.
func (p Price) Validate() error {
	return p.guard.Validate(ErrPriceIsNotConstructed)
}

// Amount returns the price in minor currency units.
func (p Price) Amount() int64 {
	return p.amount
}

// Currency returns the ISO 4217 currency code.
func (p Price) Currency() string {
	return p.currency
}

// IsEqual compares two prices by amount and currency.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount && p.currency == other.currency
}

func (p *Price) setAmount(amount int64) error {
	if amount < 0 || amount > maxPriceAmount {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, maxPriceAmount)
	}
	p.amount = amount
	return nil
}

func (p *Price) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidError("currency")
	}
	p.currency = currency
	return nil
}
