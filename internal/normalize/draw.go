package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawDraw is a draw record as the upstream may send it. The competition and
// winner relations arrive either populated or as bare ids.
type RawDraw struct {
	MongoID rawjson.String `json:"_id"`
	ID      rawjson.String `json:"id"`

	Competition      rawjson.Ref    `json:"competition"`
	CompetitionID    rawjson.String `json:"competitionId"`
	CompetitionTitle rawjson.String `json:"competitionTitle"`

	Winner     rawjson.Ref    `json:"winner"`
	User       rawjson.Ref    `json:"user"`
	WinnerID   rawjson.String `json:"winnerId"`
	WinnerName rawjson.String `json:"winnerName"`

	TotalTickets rawjson.Number `json:"totalTickets"`
	TicketCount  rawjson.Number `json:"ticketCount"`

	WinningTicket rawjson.Number `json:"winningTicket"`
	TicketNumber  rawjson.Number `json:"ticketNumber"`

	Active   rawjson.Bool `json:"active"`
	IsActive rawjson.Bool `json:"isActive"`

	DrawnAt  rawjson.String `json:"drawnAt"`
	DrawDate rawjson.String `json:"drawDate"`
}

// Draw maps a raw draw to its canonical form. Active defaults true when the
// upstream omits it.
func Draw(raw RawDraw) domain.Draw {
	compID, compTitle := competitionRef(raw.Competition, raw.CompetitionID, raw.CompetitionTitle)

	winnerRef := raw.Winner
	if !winnerRef.Present() {
		winnerRef = raw.User
	}
	winnerID, winnerName := userRef(winnerRef, raw.WinnerID, raw.WinnerName)

	return domain.Draw{
		ID:               rawjson.FirstString(raw.MongoID, raw.ID),
		CompetitionID:    compID,
		CompetitionTitle: compTitle,
		WinnerID:         winnerID,
		WinnerName:       winnerName,
		TotalTickets:     rawjson.FirstNumber(raw.TotalTickets, raw.TicketCount).Int(),
		WinningTicket:    rawjson.FirstNumber(raw.WinningTicket, raw.TicketNumber).Int(),
		Active:           rawjson.FirstBool(raw.Active, raw.IsActive).Or(true),
		DrawnAt:          rawjson.FirstString(raw.DrawnAt, raw.DrawDate),
	}
}
