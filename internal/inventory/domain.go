// internal/inventory/domain.go
package inventory

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("sku not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrDuplicateCode     = errors.New("duplicate sku code")
)

// SKU is a single tracked inventory item. The JSON field names are the
// persisted file format and must not change.
type SKU struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Size      string `json:"size"`
	Center    int    `json:"center"`
	Warehouse int    `json:"warehouse"`
}

// Category is a closed product category enumeration. Unrecognized labels map
// to CategoryUnknown, whose code prefix is the sentinel "XX".
type Category int

const (
	CategoryUnknown Category = iota
	CategoryClothing
	CategoryBackpack
	CategoryDrinkware
	CategoryHeadwear
	CategoryAccessory
	CategoryBadgeMagnet
)

var categoryLabels = map[string]Category{
	"衣物":   CategoryClothing,
	"背包":   CategoryBackpack,
	"杯具":   CategoryDrinkware,
	"帽子":   CategoryHeadwear,
	"配件":   CategoryAccessory,
	"徽章磁鐵": CategoryBadgeMagnet,
}

var categoryPrefixes = map[Category]string{
	CategoryUnknown:     "XX",
	CategoryClothing:    "CL",
	CategoryBackpack:    "BA",
	CategoryDrinkware:   "CU",
	CategoryHeadwear:    "CA",
	CategoryAccessory:   "TH",
	CategoryBadgeMagnet: "MA",
}

// ParseCategory maps a user-supplied label to a Category. It is total: any
// unrecognized label yields CategoryUnknown.
func ParseCategory(label string) Category {
	return categoryLabels[label]
}

// Prefix returns the two-letter code prefix for the category.
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

// Size is a closed garment size enumeration. Unrecognized labels map to
// SizeUnknown, whose code digit is the sentinel "9".
type Size int

const (
	SizeUnknown Size = iota
	SizeS
	SizeM
	SizeL
	SizeXL
	Size2XL
	Size3XL
	Size4XL
	Size5XL
)

var sizeLabels = map[string]Size{
	"S":   SizeS,
	"M":   SizeM,
	"L":   SizeL,
	"XL":  SizeXL,
	"2XL": Size2XL,
	"3XL": Size3XL,
	"4XL": Size4XL,
	"5XL": Size5XL,
}

var sizeDigits = map[Size]string{
	SizeUnknown: "9",
	SizeS:       "1",
	SizeM:       "2",
	SizeL:       "3",
	SizeXL:      "4",
	Size2XL:     "5",
	Size3XL:     "6",
	Size4XL:     "7",
	Size5XL:     "8",
}

// ParseSize maps a user-supplied label to a Size. Matching is
// case-insensitive for the latin labels; it is total like ParseCategory.
func ParseSize(label string) Size {
	return sizeLabels[normalizeSize(label)]
}

// normalizeSize upper-cases a size label so "xl" and "XL" are the same size.
// SKU records store the normalized form.
func normalizeSize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// Digit returns the single-digit code suffix for the size.
func (s Size) Digit() string {
	return sizeDigits[s]
}

// Location is one of the two stock locations tracked per SKU.
type Location int

const (
	LocationUnknown Location = iota
	LocationCenter
	LocationWarehouse
)

var locationLabels = map[string]Location{
	"中心": LocationCenter,
	"倉庫": LocationWarehouse,
}

// ParseLocation maps the localized location token to a Location.
func ParseLocation(label string) Location {
	return locationLabels[label]
}

// Label returns the localized token for the location.
func (l Location) Label() string {
	switch l {
	case LocationCenter:
		return "中心"
	case LocationWarehouse:
		return "倉庫"
	default:
		return ""
	}
}
