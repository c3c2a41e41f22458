package domain

// CartTotals is the server-computed aggregate for a cart. The client treats
// these values as authoritative and never recomputes them from the items.
type CartTotals struct {
	ItemCount   int     `json:"itemCount"`
	Subtotal    float64 `json:"subtotal"`
	TicketCount int     `json:"ticketCount"`
}

// CartItem is a single competition entry line in the cart. Competition is an
// optional denormalized snapshot used for display.
type CartItem struct {
	ID            string       `json:"id"`
	CompetitionID string       `json:"competitionId"`
	Competition   *Competition `json:"competition,omitempty"`
	Quantity      int          `json:"quantity"`
	UnitPrice     float64      `json:"unitPrice"`
	Subtotal      float64      `json:"subtotal"`
}

// Cart is the canonical shopping cart record.
type Cart struct {
	ID       string     `json:"id"`
	Currency string     `json:"currency"`
	Items    []CartItem `json:"items"`
	Totals   CartTotals `json:"totals"`
}
