package domain

import "strings"

// Expand selects which parents are inlined on read
type Expand struct {
	SubCategory bool
	Brand       bool
	Category    bool
}

// ParseExpand reads a comma separated list such as "subCategory,brand".
// Unknown names are ignored. Category implies SubCategory on products, since
// the category is reached through it.
func ParseExpand(raw string) Expand {
	var e Expand
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "subcategory":
			e.SubCategory = true
		case "brand":
			e.Brand = true
		case "category":
			e.Category = true
		case "all":
			e = Expand{SubCategory: true, Brand: true, Category: true}
		}
	}
	return e
}

// Any reports whether anything is expanded
func (e Expand) Any() bool {
	return e.SubCategory || e.Brand || e.Category
}
