package model

// Variant is an opaque product variant as returned by the bulk listing
// endpoint. Stored and round-tripped as-is; only price/availability fields
// are interpreted during extraction.
type Variant map[string]any

// Product represents a single product. The same shape covers both catalog
// products (from the bulk listing endpoint) and hero products (hand-picked
// from the homepage); only the acquisition path differs.
type Product struct {
	ExternalID     int64     `json:"id,omitempty"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle,omitempty"`
	Price          string    `json:"price,omitempty"`
	CompareAtPrice string    `json:"compare_at_price,omitempty"`
	Vendor         string    `json:"vendor,omitempty"`
	ProductType    string    `json:"product_type,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Images         []string  `json:"images,omitempty"` // display order
	Variants       []Variant `json:"variants,omitempty"`
	Available      bool      `json:"available"`
	Description    string    `json:"description,omitempty"`
}
