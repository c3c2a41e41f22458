package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawChampion is a curated success-story record. Structurally it parallels
// RawDraw with editorial fields on top.
type RawChampion struct {
	MongoID rawjson.String `json:"_id"`
	ID      rawjson.String `json:"id"`

	Competition      rawjson.Ref    `json:"competition"`
	CompetitionID    rawjson.String `json:"competitionId"`
	CompetitionTitle rawjson.String `json:"competitionTitle"`

	Winner     rawjson.Ref    `json:"winner"`
	User       rawjson.Ref    `json:"user"`
	WinnerID   rawjson.String `json:"winnerId"`
	WinnerName rawjson.String `json:"winnerName"`

	Prize     rawjson.String `json:"prize"`
	PrizeName rawjson.String `json:"prizeName"`

	Testimonial rawjson.String `json:"testimonial"`
	Story       rawjson.String `json:"story"`
	Quote       rawjson.String `json:"quote"`

	Featured   rawjson.Bool `json:"featured"`
	IsFeatured rawjson.Bool `json:"isFeatured"`

	WonAt rawjson.String `json:"wonAt"`
	Date  rawjson.String `json:"date"`
}

// Champion maps a raw champion to its canonical form.
func Champion(raw RawChampion) domain.Champion {
	compID, compTitle := competitionRef(raw.Competition, raw.CompetitionID, raw.CompetitionTitle)

	winnerRef := raw.Winner
	if !winnerRef.Present() {
		winnerRef = raw.User
	}
	winnerID, winnerName := userRef(winnerRef, raw.WinnerID, raw.WinnerName)

	return domain.Champion{
		ID:               rawjson.FirstString(raw.MongoID, raw.ID),
		CompetitionID:    compID,
		CompetitionTitle: compTitle,
		WinnerID:         winnerID,
		WinnerName:       winnerName,
		Prize:            rawjson.FirstString(raw.Prize, raw.PrizeName),
		Testimonial:      rawjson.FirstString(raw.Testimonial, raw.Story, raw.Quote),
		Featured:         rawjson.FirstBool(raw.Featured, raw.IsFeatured).Or(false),
		WonAt:            rawjson.FirstString(raw.WonAt, raw.Date),
	}
}
