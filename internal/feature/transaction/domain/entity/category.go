package entity

import "fmt"

// Category classifies a transaction.
type Category string

const (
	CategoryProducts      Category = "PRODUCTS"
	CategoryHouse         Category = "HOUSE"
	CategoryTransport     Category = "TRANSPORT"
	CategorySupermarkets  Category = "SUPERMARKETS"
	CategoryIncome        Category = "INCOME"
	CategoryOtherExpenses Category = "OTHER_EXPENSES"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryProducts,
	CategoryHouse,
	CategoryTransport,
	CategorySupermarkets,
	CategoryIncome,
	CategoryOtherExpenses,
}

// ParseCategory validates s as a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
