package model

// Maintenance levels inferred from free text
const (
	MaintenanceLow  = "low"
	MaintenanceHigh = "high"
)

// Sunlight preferences inferred from free text
const (
	SunlightIndirect = "indirect"
	SunlightDirect   = "direct"
	SunlightPartial  = "partial"
)

// FilterSet holds the structured constraints extracted from a customer message
// A nil field means the text did not mention that dimension
type FilterSet struct {
	MaintenanceLevel *string  `json:"maintenance_level,omitempty"`
	Sunlight         *string  `json:"sunlight,omitempty"`
	Category         *string  `json:"category,omitempty"`
	SubCategory      *string  `json:"sub_category,omitempty"`
	Type             *string  `json:"type,omitempty"`
	PetSafe          bool     `json:"pet_safe,omitempty"`
	PriceMin         *float64 `json:"price_min,omitempty"`
	PriceMax         *float64 `json:"price_max,omitempty"`
}

// IsEmpty reports whether no dimension was extracted
func (f FilterSet) IsEmpty() bool {
	return f.MaintenanceLevel == nil &&
		f.Sunlight == nil &&
		f.Category == nil &&
		f.SubCategory == nil &&
		f.Type == nil &&
		!f.PetSafe &&
		f.PriceMin == nil &&
		f.PriceMax == nil
}
