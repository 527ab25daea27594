package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Courier describes a shipping option with its flat rate structure.
// Cost is base rate for the first item plus a per-item rate for each
// additional item.
type Courier struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	BaseRate    decimal.Decimal `json:"baseRate"`
	PerItemRate decimal.Decimal `json:"perItemRate"`
}

// ErrUnknownCourier is returned for courier codes not in the rate table
var ErrUnknownCourier = shared.NewDomainError("INVALID_SHIPPING_METHOD", "Unknown shipping courier")

// couriers is the rate table, keyed by courier code. Rates are IDR.
var couriers = map[string]Courier{
	"JNE":     {Code: "JNE", Name: "JNE Express", BaseRate: decimal.NewFromInt(12000), PerItemRate: decimal.NewFromInt(3000)},
	"TIKI":    {Code: "TIKI", Name: "TIKI Reguler", BaseRate: decimal.NewFromInt(15000), PerItemRate: decimal.NewFromInt(2500)},
	"SICEPAT": {Code: "SICEPAT", Name: "SiCepat Halu", BaseRate: decimal.NewFromInt(11000), PerItemRate: decimal.NewFromInt(2000)},
	"POS":     {Code: "POS", Name: "Pos Indonesia", BaseRate: decimal.NewFromInt(10000), PerItemRate: decimal.NewFromInt(3500)},
}

// courierOrder fixes the listing order for the storefront
var courierOrder = []string{"JNE", "TIKI", "SICEPAT", "POS"}

// Couriers returns all supported couriers in display order
func Couriers() []Courier {
	out := make([]Courier, 0, len(courierOrder))
	for _, code := range courierOrder {
		out = append(out, couriers[code])
	}
	return out
}

// Lookup returns the courier for a code, or ErrUnknownCourier
func Lookup(code string) (Courier, error) {
	c, ok := couriers[code]
	if !ok {
		return Courier{}, ErrUnknownCourier
	}
	return c, nil
}

// IsSupported reports whether the code is in the rate table
func IsSupported(code string) bool {
	_, ok := couriers[code]
	return ok
}

// Cost computes the shipping cost for a shipment of itemCount units:
// the base rate covers the first unit, each additional unit adds the
// per-item rate.
func Cost(code string, itemCount int64) (decimal.Decimal, error) {
	c, err := Lookup(code)
	if err != nil {
		return decimal.Zero, err
	}
	if itemCount <= 0 {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Shipment must contain at least one item")
	}
	extra := c.PerItemRate.Mul(decimal.NewFromInt(itemCount - 1))
	return c.BaseRate.Add(extra), nil
}
