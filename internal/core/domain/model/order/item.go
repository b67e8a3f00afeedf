package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem")

// Item is an order line. Name and unit price are snapshots of the menu at
// order time; later menu changes never reach an existing order.
type Item struct {
	menuItemID string
	name       string
	quantity   int
	unitPrice  decimal.Decimal
	guard      guard.ConstructorGuard
}

// NewItem validates a line: quantity >= 1, unit price >= 0.
func NewItem(menuItemID string, name string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		menuItemID: strings.TrimSpace(menuItemID),
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
		guard:      guard.NewConstructorGuard(),
	}

	var errList []error
	if item.menuItemID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("menuItemId"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity)))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() string {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
