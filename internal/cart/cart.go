package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/types"
)

// Item is one cart row. Identity is ItemID; a product sold through a
// variation and the same product sold bare are distinct rows.
type Item struct {
	ItemID             string
	ProductID          int64
	VariationID        int64
	Name               string
	VariationLabel     string
	UnitPriceOriginal  decimal.Decimal
	UnitPriceEffective decimal.Decimal
	Quantity           int
	SKU                string
	ImageURL           string
}

// Subtotal returns effective price times quantity, unrounded.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPriceEffective.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemEntry is the payload for AddItem. Price arrives raw; unparseable or
// negative values coerce to zero rather than failing the add.
type ItemEntry struct {
	ProductID      int64
	VariationID    int64
	Name           string
	VariationLabel string
	Price          string
	Quantity       int
	SKU            string
	ImageURL       string
}

// ItemKey builds the row identity for a product/variation pair.
func ItemKey(productID, variationID int64) string {
	if variationID != 0 {
		return fmt.Sprintf("%d-%d", productID, variationID)
	}
	return fmt.Sprintf("%d", productID)
}

// Cart is the in-memory line item aggregate. It is not safe for concurrent
// use; the owning register session serializes access.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges into an existing row by item id or appends a new one.
// Returns the resulting row.
func (c *Cart) AddItem(entry ItemEntry) (Item, error) {
	if entry.ProductID <= 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	qty := entry.Quantity
	if qty < 1 {
		qty = 1
	}

	id := ItemKey(entry.ProductID, entry.VariationID)
	if idx := c.indexOf(id); idx >= 0 {
		c.items[idx].Quantity += qty
		return c.items[idx], nil
	}

	price, _ := types.ParseAmount(entry.Price)
	item := Item{
		ItemID:             id,
		ProductID:          entry.ProductID,
		VariationID:        entry.VariationID,
		Name:               entry.Name,
		VariationLabel:     entry.VariationLabel,
		UnitPriceOriginal:  price,
		UnitPriceEffective: price,
		Quantity:           qty,
		SKU:                entry.SKU,
		ImageURL:           entry.ImageURL,
	}
	c.items = append(c.items, item)
	return item, nil
}

// SetQuantity updates a row's quantity. Anything below one removes the row;
// an unknown id is a no-op.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return
	}
	if quantity < 1 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return
	}
	c.items[idx].Quantity = quantity
}

// SetPrice overrides the effective unit price for a row. Invalid or negative
// prices leave state unchanged.
func (c *Cart) SetPrice(itemID string, price string) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	amount, ok := types.ParseAmount(price)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number")
	}
	c.items[idx].UnitPriceEffective = amount
	return nil
}

// ResetPrice restores a row's effective price to its original catalog price.
func (c *Cart) ResetPrice(itemID string) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	c.items[idx].UnitPriceEffective = c.items[idx].UnitPriceOriginal
	return nil
}

// Remove deletes a row outright. Unknown ids are a no-op.
func (c *Cart) Remove(itemID string) {
	c.SetQuantity(itemID, 0)
}

// Total sums effective price times quantity across all rows, unrounded.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the rows in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct rows.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart holds no rows.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the aggregate.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) indexOf(itemID string) int {
	for i, item := range c.items {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}
