package domain

// Category classifies a maintenance action. The set is closed: anything that
// does not fit an explicit category is recorded as CategoryOther.
//
// Dispatch on categories always goes through explicit tables (Categories,
// CategoryLabels, ServiceIntervals) rather than switch statements scattered
// across packages, so adding a category is a one-file change.
type Category string

const (
	CategoryOilChange    Category = "oil_change"
	CategoryTires        Category = "tires"
	CategoryBrakes       Category = "brakes"
	CategoryFilters      Category = "filters"
	CategoryFluids       Category = "fluids"
	CategoryElectrical   Category = "electrical"
	CategoryEngine       Category = "engine"
	CategoryTransmission Category = "transmission"
	CategorySuspension   Category = "suspension"
	CategoryBody         Category = "body"
	CategoryInspection   Category = "inspection"
	CategoryOther        Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryOilChange,
	CategoryTires,
	CategoryBrakes,
	CategoryFilters,
	CategoryFluids,
	CategoryElectrical,
	CategoryEngine,
	CategoryTransmission,
	CategorySuspension,
	CategoryBody,
	CategoryInspection,
	CategoryOther,
}

// CategoryLabels maps each category to its human-readable display label.
var CategoryLabels = map[Category]string{
	CategoryOilChange:    "Oil Change",
	CategoryTires:        "Tires",
	CategoryBrakes:       "Brakes",
	CategoryFilters:      "Filters",
	CategoryFluids:       "Fluids",
	CategoryElectrical:   "Electrical",
	CategoryEngine:       "Engine",
	CategoryTransmission: "Transmission",
	CategorySuspension:   "Suspension",
	CategoryBody:         "Body/Exterior",
	CategoryInspection:   "Inspection",
	CategoryOther:        "Other",
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

// Label returns the display label for c, falling back to the "Other" label
// for unrecognized values so presentation code never renders an empty badge.
func (c Category) Label() string {
	if l, ok := CategoryLabels[c]; ok {
		return l
	}
	return CategoryLabels[CategoryOther]
}
