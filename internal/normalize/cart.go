package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawCart is a cart as the upstream may send it.
type RawCart struct {
	MongoID  rawjson.String `json:"_id"`
	ID       rawjson.String `json:"id"`
	Currency rawjson.String `json:"currency"`

	Items []RawCartItem `json:"items"`

	Totals  *RawCartTotals `json:"totals"`
	Summary *RawCartTotals `json:"summary"`
}

// RawCartTotals is the server-side aggregate in either of its spellings.
type RawCartTotals struct {
	ItemCount rawjson.Number `json:"itemCount"`
	Count     rawjson.Number `json:"count"`

	Subtotal rawjson.Number `json:"subtotal"`

	TicketCount  rawjson.Number `json:"ticketCount"`
	TotalTickets rawjson.Number `json:"totalTickets"`
}

// RawCartItem is a cart line. The competition relation arrives populated or
// as a bare id; a populated object becomes the display snapshot.
type RawCartItem struct {
	MongoID rawjson.String `json:"_id"`
	ID      rawjson.String `json:"id"`

	Competition   rawjson.Ref    `json:"competition"`
	CompetitionID rawjson.String `json:"competitionId"`

	Quantity rawjson.Number `json:"quantity"`

	UnitPrice rawjson.Number `json:"unitPrice"`
	Price     rawjson.Number `json:"price"`

	Subtotal rawjson.Number `json:"subtotal"`
}

// Cart maps a raw cart to its canonical form. Totals come from the server
// verbatim; they are never recomputed from the items, even when item-level
// arithmetic would disagree.
func Cart(raw RawCart) domain.Cart {
	items := make([]domain.CartItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, CartItem(item))
	}

	totals := raw.Totals
	if totals == nil {
		totals = raw.Summary
	}

	return domain.Cart{
		ID:       rawjson.FirstString(raw.MongoID, raw.ID),
		Currency: raw.Currency.Value(),
		Items:    items,
		Totals:   cartTotals(totals),
	}
}

// CartItem maps one raw cart line to its canonical form.
func CartItem(raw RawCartItem) domain.CartItem {
	item := domain.CartItem{
		ID:            rawjson.FirstString(raw.MongoID, raw.ID),
		CompetitionID: raw.Competition.ID,
		Quantity:      raw.Quantity.Int(),
		UnitPrice:     rawjson.FirstNumber(raw.UnitPrice, raw.Price).Float(),
		Subtotal:      raw.Subtotal.Float(),
	}
	if item.CompetitionID == "" {
		item.CompetitionID = raw.CompetitionID.Value()
	}
	if raw.Competition.Populated() {
		var snap RawCompetition
		if err := raw.Competition.Decode(&snap); err == nil {
			comp := Competition(snap)
			item.Competition = &comp
			if item.CompetitionID == "" {
				item.CompetitionID = comp.ID
			}
		}
	}
	return item
}

func cartTotals(raw *RawCartTotals) domain.CartTotals {
	if raw == nil {
		return domain.CartTotals{}
	}
	return domain.CartTotals{
		ItemCount:   rawjson.FirstNumber(raw.ItemCount, raw.Count).Int(),
		Subtotal:    raw.Subtotal.Float(),
		TicketCount: rawjson.FirstNumber(raw.TicketCount, raw.TotalTickets).Int(),
	}
}
