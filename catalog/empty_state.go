package catalog

// Empty-state messages shown when a listing has no matches
const (
	NoDestinationsMessage = "No destinations match your filters."
	NoHotelsMessage       = "No hotels match your filters."
	NoArticlesMessage     = "No articles match your search."
)
