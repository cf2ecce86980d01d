package pricing

// Item carries the catalog selections of one order line. Quantity below 1 is
// treated as 1 when aggregating.
type Item struct {
	ProductTypeId string
	SizeId        string
	MaterialId    string
	AddonIds      []string
	Quantity      int
}

// Breakdown decomposes a price into its named components. For a single item it
// describes one unit; for an order each field is the quantity-weighted sum
// across all items. Tax stays 0 at item level, invoice-level tax is layered on
// separately by ApplyAdjustments.
type Breakdown struct {
	BasePrice        float64 `json:"base_price"`
	SizeModifier     float64 `json:"size_modifier"`
	MaterialModifier float64 `json:"material_modifier"`
	AddonsTotal      float64 `json:"addons_total"`
	Subtotal         float64 `json:"subtotal"`
	Tax              float64 `json:"tax"`
	Total            float64 `json:"total"`
}

// PriceItem derives the single-unit breakdown for one item. Quantity is NOT
// applied here; AggregateOrder multiplies per line. Downstream tax and fee
// math depends on that point of multiplication, so keep it.
func PriceItem(cat Catalog, it Item) Breakdown {
	b := Breakdown{
		BasePrice:        cat.basePrice(it.ProductTypeId),
		SizeModifier:     cat.sizeModifier(it.SizeId),
		MaterialModifier: cat.materialModifier(it.MaterialId),
	}
	for _, id := range it.AddonIds {
		b.AddonsTotal += cat.addonPrice(id)
	}
	b.Subtotal = b.BasePrice + b.SizeModifier + b.MaterialModifier + b.AddonsTotal
	b.Total = b.Subtotal
	return b
}

// AggregateOrder sums the per-unit breakdowns of all items, each weighted by
// its quantity, into the order-level breakdown. Pure function of its inputs:
// reordering items never changes the result.
func AggregateOrder(cat Catalog, items []Item) Breakdown {
	var agg Breakdown
	for _, it := range items {
		unit := PriceItem(cat, it)
		qty := float64(NormalizeQuantity(it.Quantity))
		agg.BasePrice += unit.BasePrice * qty
		agg.SizeModifier += unit.SizeModifier * qty
		agg.MaterialModifier += unit.MaterialModifier * qty
		agg.AddonsTotal += unit.AddonsTotal * qty
		agg.Subtotal += unit.Subtotal * qty
		agg.Tax += unit.Tax * qty
		agg.Total += unit.Total * qty
	}
	return agg
}

// NormalizeQuantity coerces non-positive quantities to 1.
func NormalizeQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
