package browse

import "prize-portal-service/internal/domain"

// CompetitionPatch carries a partial update for a competition. Nil fields
// are left untouched; slices replace wholesale when non-nil.
type CompetitionPatch struct {
	Slug        *string
	Title       *string
	Description *string
	Prize       *string
	PrizeValue  *float64
	TicketPrice *float64
	MaxTickets  *int
	SoldTickets *int
	Status      *domain.CompetitionStatus
	Category    *string
	Featured    *bool
	Images      []domain.Image
	Question    *domain.Question
	EndsAt      *string
}

func (p CompetitionPatch) apply(c *domain.Competition) {
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Prize != nil {
		c.Prize = *p.Prize
	}
	if p.PrizeValue != nil {
		c.PrizeValue = *p.PrizeValue
	}
	if p.TicketPrice != nil {
		c.TicketPrice = *p.TicketPrice
	}
	if p.MaxTickets != nil {
		c.MaxTickets = *p.MaxTickets
	}
	if p.SoldTickets != nil {
		c.SoldTickets = *p.SoldTickets
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Featured != nil {
		c.Featured = *p.Featured
	}
	if p.Images != nil {
		c.Images = append([]domain.Image(nil), p.Images...)
	}
	if p.Question != nil {
		question := *p.Question
		c.Question = &question
	}
	if p.EndsAt != nil {
		c.EndsAt = *p.EndsAt
	}
}
