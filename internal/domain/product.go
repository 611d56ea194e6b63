package domain

// Specifications holds the free-text spec sheet shown on a product page.
type Specifications struct {
	Dimensions string `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Voltage    string `bson:"voltage,omitempty" json:"voltage,omitempty"`
	Efficiency string `bson:"efficiency,omitempty" json:"efficiency,omitempty"`
	Warranty   string `bson:"warranty,omitempty" json:"warranty,omitempty"`
}

// Product represents a catalog product. Images is ordered; the first entry is
// the cover image shown in listings.
type Product struct {
	Meta           `bson:",inline"`
	Name           string         `bson:"name" json:"name"`
	Summary        string         `bson:"summary,omitempty" json:"summary,omitempty"`
	Wattage        string         `bson:"wattage,omitempty" json:"wattage,omitempty"`
	Price          float64        `bson:"price" json:"price"`
	Category       string         `bson:"category,omitempty" json:"category,omitempty"`
	SubCategory    string         `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Link           string         `bson:"link,omitempty" json:"link,omitempty"`
	Images         []string       `bson:"images,omitempty" json:"images,omitempty"`
	Specifications Specifications `bson:"specifications,omitempty" json:"specifications,omitempty"`
}
