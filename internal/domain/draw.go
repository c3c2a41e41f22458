package domain

// Draw is a completed or scheduled prize draw. Relations to the competition
// and the winning user are always flattened to ids; the title and name fields
// are optional denormalized copies for display.
type Draw struct {
	ID               string `json:"id"`
	CompetitionID    string `json:"competitionId"`
	CompetitionTitle string `json:"competitionTitle,omitempty"`
	WinnerID         string `json:"winnerId"`
	WinnerName       string `json:"winnerName,omitempty"`
	TotalTickets     int    `json:"totalTickets"`
	WinningTicket    int    `json:"winningTicket"`
	Active           bool   `json:"active"`
	DrawnAt          string `json:"drawnAt,omitempty"`
}

// Champion is a curated winner success story. It mirrors Draw structurally
// but carries editorial fields instead of draw mechanics.
type Champion struct {
	ID               string `json:"id"`
	CompetitionID    string `json:"competitionId"`
	CompetitionTitle string `json:"competitionTitle,omitempty"`
	WinnerID         string `json:"winnerId"`
	WinnerName       string `json:"winnerName,omitempty"`
	Prize            string `json:"prize"`
	Testimonial      string `json:"testimonial"`
	Featured         bool   `json:"featured"`
	WonAt            string `json:"wonAt,omitempty"`
}
