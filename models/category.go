package models

// Categories is the fixed set of appliance categories a product may
// belong to. The list drives both admin validation and the public
// category filter.
var Categories = []string{
	"Réfrigérateurs",
	"Lave-linge",
	"TV",
	"Climatiseurs",
	"Cuisinières",
	"Micro-ondes",
	"Autres",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
