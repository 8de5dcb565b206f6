package models

// ItineraryDay represents a single day's plan within a destination package
type ItineraryDay struct {
	Day    int    `json:"day" yaml:"day"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// Destination represents a tour package listed on the destinations page
type Destination struct {
	ID              string         `json:"id" yaml:"id"`
	Slug            string         `json:"slug" yaml:"slug"`
	Title           string         `json:"title" yaml:"title"`
	Subtitle        string         `json:"subtitle" yaml:"subtitle"` // Duration label (e.g., "7D/6N")
	Region          string         `json:"region" yaml:"region"`
	PackageType     string         `json:"packageType" yaml:"packageType"`
	Price           int64          `json:"price" yaml:"price"` // INR per person
	Rating          float64        `json:"rating" yaml:"rating"`
	Image           string         `json:"image" yaml:"image"`
	Country         string         `json:"country,omitempty" yaml:"country"`
	BestTimeToVisit string         `json:"bestTimeToVisit,omitempty" yaml:"bestTimeToVisit"`
	Featured        bool           `json:"featured" yaml:"featured"`
	Description     string         `json:"description,omitempty" yaml:"description"` // HTML
	Dates           []string       `json:"dates,omitempty" yaml:"dates"`             // Departure dates (YYYY-MM-DD)
	Packages        []string       `json:"packages,omitempty" yaml:"packages"`
	Itinerary       []ItineraryDay `json:"itinerary,omitempty" yaml:"itinerary"`
}
