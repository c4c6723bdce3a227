package model

import "encoding/json"

// Product is a catalog record as returned to the customer
type Product struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	ImageSrc    string         `json:"imageSrc"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Link        string         `json:"link"`
	Category    string         `json:"category"`
	SubCategory string         `json:"subCategory"`
	Type        string         `json:"type"`
	Details     ProductDetails `json:"details"`
	Stock       ProductStock   `json:"stock"`
	MatchScore  float64        `json:"match_score"`
}

// ProductDetails holds the descriptive attributes of a product
type ProductDetails struct {
	ScientificName  string `json:"scientificName"`
	Sunlight        string `json:"sunlight"`
	Watering        string `json:"watering"`
	GrowthRate      string `json:"growthRate"`
	Maintenance     string `json:"maintenance"`
	BloomSeason     string `json:"bloomSeason"`
	SpecialFeatures string `json:"specialFeatures"`
	Toxicity        string `json:"toxicity"`
	Material        string `json:"material"`
	DrainageHoles   bool   `json:"drainageHoles"`
	Size            string `json:"size"`
	Color           string `json:"color"`
	UseCase         string `json:"useCase"`
}

// ProductStock holds inventory state
type ProductStock struct {
	Availability bool `json:"availability"`
	Quantity     int  `json:"quantity"`
}

// UnmarshalJSON treats a missing availability flag as available
func (s *ProductStock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Availability *bool `json:"availability"`
		Quantity     int   `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Availability = raw.Availability == nil || *raw.Availability
	s.Quantity = raw.Quantity
	return nil
}

// InStock reports whether the product can be shipped now
func (s ProductStock) InStock() bool {
	return s.Availability && s.Quantity > 0
}
