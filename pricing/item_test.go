package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"atelier-backend/pricing"
)

func testCatalog() pricing.Catalog {
	return pricing.Catalog{
		ProductTypes: map[string]pricing.ProductEntry{
			"portrait": {BasePrice: 100, Category: "commission"},
			"print":    {BasePrice: 50, Category: "merch"},
		},
		Sizes: map[string]pricing.Modifier{
			"large": {PriceModifier: 20},
		},
		Materials: map[string]pricing.Modifier{
			"canvas": {PriceModifier: 10},
		},
		Addons: map[string]pricing.AddonEntry{
			"framing": {Price: 15},
			"gift":    {Price: 5},
		},
		PaymentFees: map[string]pricing.FeeRule{
			"card": {Label: "Card", Rate: 3},
		},
		ChannelFees: map[string]pricing.FeeRule{
			"marketplace": {Label: "Marketplace", Rate: 5, Fixed: 0.30},
		},
	}
}

func TestPriceItemSingleUnit(t *testing.T) {
	cat := testCatalog()
	b := pricing.PriceItem(cat, pricing.Item{
		ProductTypeId: "portrait",
		SizeId:        "large",
		MaterialId:    "canvas",
		AddonIds:      []string{"framing"},
		Quantity:      2, // must be ignored at this stage
	})

	require.InDelta(t, 100, b.BasePrice, 1e-9)
	require.InDelta(t, 20, b.SizeModifier, 1e-9)
	require.InDelta(t, 10, b.MaterialModifier, 1e-9)
	require.InDelta(t, 15, b.AddonsTotal, 1e-9)
	require.InDelta(t, 145, b.Subtotal, 1e-9)
	require.Zero(t, b.Tax)
	require.InDelta(t, 145, b.Total, 1e-9)
}

func TestPriceItemMissingCatalogEntries(t *testing.T) {
	// A deleted product type (or any dangling id) contributes 0 instead of
	// failing the whole order.
	b := pricing.PriceItem(testCatalog(), pricing.Item{
		ProductTypeId: "deleted-product",
		SizeId:        "deleted-size",
		MaterialId:    "",
		AddonIds:      []string{"framing", "no-such-addon"},
		Quantity:      1,
	})

	require.Zero(t, b.BasePrice)
	require.Zero(t, b.SizeModifier)
	require.Zero(t, b.MaterialModifier)
	require.InDelta(t, 15, b.AddonsTotal, 1e-9)
	require.InDelta(t, 15, b.Subtotal, 1e-9)
}

func TestPriceItemEmptyCatalog(t *testing.T) {
	b := pricing.PriceItem(pricing.Catalog{}, pricing.Item{
		ProductTypeId: "portrait",
		AddonIds:      []string{"framing"},
	})
	require.Zero(t, b.Subtotal)
	require.Zero(t, b.Total)
}

func TestAggregateOrderSumInvariant(t *testing.T) {
	cat := testCatalog()
	items := []pricing.Item{
		{ProductTypeId: "portrait", SizeId: "large", MaterialId: "canvas", AddonIds: []string{"framing"}, Quantity: 2},
		{ProductTypeId: "print", Quantity: 1},
		{ProductTypeId: "print", AddonIds: []string{"gift"}, Quantity: 3},
	}

	agg := pricing.AggregateOrder(cat, items)

	var want float64
	for _, it := range items {
		want += pricing.PriceItem(cat, it).Subtotal * float64(it.Quantity)
	}
	require.InDelta(t, want, agg.Subtotal, 1e-9)
	require.InDelta(t, agg.Subtotal, agg.Total, 1e-9)
	require.Zero(t, agg.Tax)
}

func TestAggregateOrderScenario(t *testing.T) {
	// Item A: 100 base + 20 size + 10 material + 15 addon = 145/unit, qty 2.
	// Item B: 50 base, qty 1. Order subtotal 340.
	agg := pricing.AggregateOrder(testCatalog(), []pricing.Item{
		{ProductTypeId: "portrait", SizeId: "large", MaterialId: "canvas", AddonIds: []string{"framing"}, Quantity: 2},
		{ProductTypeId: "print", Quantity: 1},
	})
	require.InDelta(t, 340, agg.Subtotal, 1e-9)
	require.InDelta(t, 200, agg.BasePrice, 1e-9)
	require.InDelta(t, 40, agg.SizeModifier, 1e-9)
	require.InDelta(t, 20, agg.MaterialModifier, 1e-9)
	require.InDelta(t, 30, agg.AddonsTotal, 1e-9)
}

func TestAggregateOrderIndependentOfItemOrder(t *testing.T) {
	cat := testCatalog()
	items := []pricing.Item{
		{ProductTypeId: "portrait", SizeId: "large", Quantity: 2},
		{ProductTypeId: "print", AddonIds: []string{"gift"}, Quantity: 4},
		{ProductTypeId: "print", MaterialId: "canvas", Quantity: 1},
	}
	reversed := []pricing.Item{items[2], items[1], items[0]}

	require.Equal(t, pricing.AggregateOrder(cat, items), pricing.AggregateOrder(cat, reversed))
}

func TestAggregateOrderIdempotent(t *testing.T) {
	cat := testCatalog()
	items := []pricing.Item{
		{ProductTypeId: "portrait", SizeId: "large", Quantity: 2},
		{ProductTypeId: "print", Quantity: 1},
	}
	first := pricing.AggregateOrder(cat, items)
	second := pricing.AggregateOrder(cat, items)
	require.Equal(t, first, second)
}

func TestAggregateOrderCoercesQuantity(t *testing.T) {
	cat := testCatalog()
	for _, qty := range []int{0, -3} {
		agg := pricing.AggregateOrder(cat, []pricing.Item{
			{ProductTypeId: "print", Quantity: qty},
		})
		require.InDelta(t, 50, agg.Subtotal, 1e-9, "quantity %d should price as 1", qty)
	}
}

func TestAggregateOrderEmpty(t *testing.T) {
	require.Zero(t, pricing.AggregateOrder(testCatalog(), nil).Total)
}
