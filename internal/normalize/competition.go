package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawCompetition is a competition record as the upstream may send it, across
// endpoint versions. Every field is optional; alternate key spellings are
// separate fields so the priority order stays explicit.
type RawCompetition struct {
	MongoID rawjson.String `json:"_id"`
	ID      rawjson.String `json:"id"`
	Slug    rawjson.String `json:"slug"`

	Title rawjson.String `json:"title"`
	Name  rawjson.String `json:"name"`

	Description rawjson.String `json:"description"`
	Details     rawjson.String `json:"details"`

	Prize           rawjson.String `json:"prize"`
	PrizeName       rawjson.String `json:"prizeName"`
	PrizeValue      rawjson.Number `json:"prizeValue"`
	PrizeValueSnake rawjson.Number `json:"prize_value"`

	TicketPrice      rawjson.Number `json:"ticketPrice"`
	TicketPriceSnake rawjson.Number `json:"ticket_price"`
	Price            rawjson.Number `json:"price"`

	MaxTickets      rawjson.Number `json:"maxTickets"`
	TotalTickets    rawjson.Number `json:"totalTickets"`
	MaxTicketsSnake rawjson.Number `json:"max_tickets"`

	SoldTickets      rawjson.Number `json:"soldTickets"`
	TicketsSold      rawjson.Number `json:"ticketsSold"`
	SoldTicketsSnake rawjson.Number `json:"sold_tickets"`

	Status   rawjson.String `json:"status"`
	Category rawjson.String `json:"category"`

	Featured   rawjson.Bool `json:"featured"`
	IsFeatured rawjson.Bool `json:"isFeatured"`

	Images []rawjson.Image `json:"images"`

	Question *RawQuestion `json:"question"`
	Quiz     *RawQuestion `json:"quiz"`

	EndsAt  rawjson.String `json:"endsAt"`
	EndDate rawjson.String `json:"endDate"`
}

// RawQuestion is the skill question in any of its historical shapes.
type RawQuestion struct {
	Prompt   rawjson.String `json:"prompt"`
	Question rawjson.String `json:"question"`
	Text     rawjson.String `json:"text"`

	Options []rawjson.String `json:"options"`
	Answers []rawjson.String `json:"answers"`
	Choices []rawjson.String `json:"choices"`

	CorrectAnswer rawjson.String `json:"correctAnswer"`
	Answer        rawjson.String `json:"answer"`

	Explanation rawjson.String `json:"explanation"`
}

// Competition maps a raw competition to its canonical form.
func Competition(raw RawCompetition) domain.Competition {
	return domain.Competition{
		ID:          rawjson.FirstString(raw.MongoID, raw.ID),
		Slug:        raw.Slug.Value(),
		Title:       rawjson.FirstString(raw.Title, raw.Name),
		Description: rawjson.FirstString(raw.Description, raw.Details),
		Prize:       rawjson.FirstString(raw.Prize, raw.PrizeName),
		PrizeValue:  rawjson.FirstNumber(raw.PrizeValue, raw.PrizeValueSnake).Float(),
		TicketPrice: rawjson.FirstNumber(raw.TicketPrice, raw.TicketPriceSnake, raw.Price).Float(),
		MaxTickets:  rawjson.FirstNumber(raw.MaxTickets, raw.TotalTickets, raw.MaxTicketsSnake).Int(),
		SoldTickets: rawjson.FirstNumber(raw.SoldTickets, raw.TicketsSold, raw.SoldTicketsSnake).Int(),
		Status:      CompetitionStatus(raw.Status.Value()),
		Category:    raw.Category.Value(),
		Featured:    rawjson.FirstBool(raw.Featured, raw.IsFeatured).Or(false),
		Images:      images(raw.Images),
		Question:    question(raw.Question, raw.Quiz),
		EndsAt:      rawjson.FirstString(raw.EndsAt, raw.EndDate),
	}
}

// CompetitionStatus matches a raw status string against the closed set,
// falling back to the documented default for anything unrecognized.
func CompetitionStatus(raw string) domain.CompetitionStatus {
	status := domain.CompetitionStatus(lower(raw))
	if domain.KnownCompetitionStatus(status) {
		return status
	}
	return domain.DefaultCompetitionStatus
}

func images(raw []rawjson.Image) []domain.Image {
	out := make([]domain.Image, 0, len(raw))
	for _, img := range raw {
		if !img.Present() {
			continue
		}
		out = append(out, domain.Image{
			URL:       img.URL,
			PublicID:  img.PublicID,
			Thumbnail: img.Thumbnail,
		})
	}
	return out
}

func question(candidates ...*RawQuestion) *domain.Question {
	for _, raw := range candidates {
		if raw == nil {
			continue
		}
		prompt := rawjson.FirstString(raw.Prompt, raw.Question, raw.Text)
		options := stringList(raw.Options, raw.Answers, raw.Choices)
		if prompt == "" && len(options) == 0 {
			continue
		}
		return &domain.Question{
			Prompt:        prompt,
			Options:       options,
			CorrectAnswer: rawjson.FirstString(raw.CorrectAnswer, raw.Answer),
			Explanation:   raw.Explanation.Value(),
		}
	}
	return nil
}

func stringList(candidates ...[]rawjson.String) []string {
	for _, list := range candidates {
		if len(list) == 0 {
			continue
		}
		out := make([]string, 0, len(list))
		for _, v := range list {
			if v.Present() {
				out = append(out, v.Value())
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
