package api

// Item is the full JSON representation of a catalog listing.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageName string `json:"image_name"`
}

// SearchItem is the representation returned by the search endpoint, which
// omits the id.
type SearchItem struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageName string `json:"image_name"`
}

// ItemsResponse wraps a list of items.
type ItemsResponse struct {
	Items []Item `json:"items"`
}

// SearchResponse wraps a list of search results.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

// MessageResponse is the generic acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}
