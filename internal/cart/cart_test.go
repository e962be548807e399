package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
)

func TestItemKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", ItemKey(42, 0))
	assert.Equal(t, "42-7", ItemKey(42, 7))
}

func TestAddItemMergesByID(t *testing.T) {
	t.Parallel()

	c := New()
	first, err := c.AddItem(ItemEntry{ProductID: 42, VariationID: 7, Price: "10.00", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "42-7", first.ItemID)

	second, err := c.AddItem(ItemEntry{ProductID: 42, VariationID: 7, Price: "10.00", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, second.Quantity)
}

func TestAddItemVariationIsDistinctRow(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.AddItem(ItemEntry{ProductID: 42, Price: "5.00", Quantity: 1})
	require.NoError(t, err)
	_, err = c.AddItem(ItemEntry{ProductID: 42, VariationID: 7, Price: "6.00", Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
}

func TestAddItemCoercesBadPriceToZero(t *testing.T) {
	t.Parallel()

	c := New()
	item, err := c.AddItem(ItemEntry{ProductID: 1, Price: "not-a-number", Quantity: 2})
	require.NoError(t, err)

	assert.True(t, item.UnitPriceOriginal.IsZero())
	assert.True(t, c.Total().IsZero())
}

func TestAddItemRequiresProduct(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.AddItem(ItemEntry{Price: "1.00"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSetQuantityRemovesBelowOne(t *testing.T) {
	t.Parallel()

	c := New()
	item, err := c.AddItem(ItemEntry{ProductID: 1, Price: "3.00", Quantity: 2})
	require.NoError(t, err)

	c.SetQuantity(item.ItemID, 0)
	assert.True(t, c.IsEmpty())

	// unknown id is a no-op
	c.SetQuantity("999", 5)
	assert.True(t, c.IsEmpty())
}

func TestPriceOverrideAndReset(t *testing.T) {
	t.Parallel()

	c := New()
	item, err := c.AddItem(ItemEntry{ProductID: 1, Price: "10", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "20.00", c.Total().StringFixed(2))

	require.NoError(t, c.SetPrice(item.ItemID, "7.5"))
	assert.Equal(t, "15.00", c.Total().StringFixed(2))

	require.NoError(t, c.ResetPrice(item.ItemID))
	assert.Equal(t, "20.00", c.Total().StringFixed(2))

	got := c.Items()[0]
	assert.True(t, got.UnitPriceEffective.Equal(got.UnitPriceOriginal))
}

func TestSetPriceRejectsInvalidInputUnchanged(t *testing.T) {
	t.Parallel()

	c := New()
	item, err := c.AddItem(ItemEntry{ProductID: 1, Price: "10", Quantity: 1})
	require.NoError(t, err)

	for _, bad := range []string{"-1", "abc", ""} {
		err := c.SetPrice(item.ItemID, bad)
		require.Error(t, err, "price %q should be rejected", bad)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	}
	assert.Equal(t, "10.00", c.Total().StringFixed(2))
}

func TestSetPriceUnknownItem(t *testing.T) {
	t.Parallel()

	c := New()
	err := c.SetPrice("1", "5.00")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestPriceOverrideSurvivesQuantityChange(t *testing.T) {
	t.Parallel()

	c := New()
	item, err := c.AddItem(ItemEntry{ProductID: 1, Price: "10", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.SetPrice(item.ItemID, "8"))
	c.SetQuantity(item.ItemID, 3)

	assert.Equal(t, "24.00", c.Total().StringFixed(2))
}

func TestTotalInvariantAcrossMutations(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.AddItem(ItemEntry{ProductID: 1, Price: "2.50", Quantity: 4})
	require.NoError(t, err)
	item2, err := c.AddItem(ItemEntry{ProductID: 2, Price: "1.25", Quantity: 2})
	require.NoError(t, err)

	assertTotalMatchesRows(t, c)

	c.SetQuantity(item2.ItemID, 5)
	assertTotalMatchesRows(t, c)

	require.NoError(t, c.SetPrice(item2.ItemID, "0.99"))
	assertTotalMatchesRows(t, c)

	c.Remove("1")
	assertTotalMatchesRows(t, c)

	c.Clear()
	assert.True(t, c.Total().IsZero())
}

func TestItemsReturnsCopies(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.AddItem(ItemEntry{ProductID: 1, Price: "5", Quantity: 1})
	require.NoError(t, err)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func assertTotalMatchesRows(t *testing.T, c *Cart) {
	t.Helper()
	total := c.Total()
	expected := decimal.Zero
	for _, item := range c.Items() {
		expected = expected.Add(item.Subtotal())
	}
	if !total.Equal(expected) {
		t.Fatalf("total %s does not match row sum %s", total, expected)
	}
}
