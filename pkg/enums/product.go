package enums

import "fmt"

// ProductType splits the catalog into plain products and variation parents.
type ProductType string

const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeVariable ProductType = "variable"
)

// StockStatus mirrors the catalog's availability flag.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "instock"
	StockStatusOutOfStock StockStatus = "outofstock"
)

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	return p == ProductTypeSimple || p == ProductTypeVariable
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	return s == StockStatusInStock || s == StockStatusOutOfStock
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	switch ProductType(value) {
	case ProductTypeSimple, ProductTypeVariable:
		return ProductType(value), nil
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
