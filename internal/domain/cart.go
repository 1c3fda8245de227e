package domain

// CartLine is one row of the cart. ID identifies the cart entry itself,
// ProductID the catalog item behind it.
type CartLine struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  Money  `json:"subtotal"`
}

// CartSnapshot represents the full authoritative cart state for one fetch.
// Items arrive in server-determined order and are rendered in that order.
type CartSnapshot struct {
	ItemCount int        `json:"item_count"`
	Total     Money      `json:"total"`
	Items     []CartLine `json:"items"`
}

// Empty reports whether the snapshot should render as the empty-cart state.
// A zero item count and an empty item list are synonymous triggers.
func (s CartSnapshot) Empty() bool {
	return s.ItemCount == 0 || len(s.Items) == 0
}
