package pricing

// Catalog is the read-only set of lookup tables all price derivation runs
// against. Callers assemble it from the tenant's catalog rows and pass it by
// value; the engine never mutates it. A missing entry in any table resolves to
// a zero contribution, never an error, so a partially configured catalog still
// prices every order.
type Catalog struct {
	ProductTypes map[string]ProductEntry
	Sizes        map[string]Modifier
	Materials    map[string]Modifier
	Addons       map[string]AddonEntry
	PaymentFees  map[string]FeeRule
	ChannelFees  map[string]FeeRule
}

// ProductEntry is a sellable product/service type.
type ProductEntry struct {
	BasePrice float64
	Category  string
}

// Modifier is an additive per-unit price adjustment (size, material).
type Modifier struct {
	PriceModifier float64
}

// AddonEntry is an additive, order-independent extra; an item may select any
// number of them.
type AddonEntry struct {
	Price float64
}

// FeeRule describes a percentage-plus-fixed processing charge. Payment-method
// and sales-channel fees share this shape.
type FeeRule struct {
	Label string
	Rate  float64 // percent, 0-100
	Fixed float64
}

func (c Catalog) basePrice(id string) float64 {
	if p, ok := c.ProductTypes[id]; ok {
		return nonNegative(p.BasePrice)
	}
	return 0
}

func (c Catalog) sizeModifier(id string) float64 {
	if m, ok := c.Sizes[id]; ok {
		return nonNegative(m.PriceModifier)
	}
	return 0
}

func (c Catalog) materialModifier(id string) float64 {
	if m, ok := c.Materials[id]; ok {
		return nonNegative(m.PriceModifier)
	}
	return 0
}

func (c Catalog) addonPrice(id string) float64 {
	if a, ok := c.Addons[id]; ok {
		return nonNegative(a.Price)
	}
	return 0
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
