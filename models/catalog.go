package models

// Catalog represents every collection read from a catalog source
type Catalog struct {
	Destinations []Destination `json:"destinations" yaml:"destinations"`
	Hotels       []Hotel       `json:"hotels" yaml:"hotels"`
	BlogPosts    []BlogPost    `json:"blogPosts" yaml:"blogPosts"`
	FAQs         []FAQ         `json:"faqs" yaml:"faqs"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
}

// BrochureData represents the data structure passed to the brochure template
type BrochureData struct {
	Title        string        `json:"title"`
	Filters      string        `json:"filters"` // Human-readable summary of the applied filters
	Destinations []Destination `json:"destinations"`
	Message      string        `json:"message,omitempty"`
	GeneratedAt  string        `json:"generatedAt"`
}

// ImageRef identifies the source image of one catalog item
type ImageRef struct {
	Catalog string `json:"catalog"`
	ID      string `json:"id"`
	URL     string `json:"url"` // http(s) URL or drive://<fileID>
}
