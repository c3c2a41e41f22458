package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawContentPage is a legal/informational page record.
type RawContentPage struct {
	Slug rawjson.String `json:"slug"`
	Key  rawjson.String `json:"key"`

	Title   rawjson.String `json:"title"`
	Heading rawjson.String `json:"heading"`

	Body    rawjson.String `json:"body"`
	Content rawjson.String `json:"content"`
	HTML    rawjson.String `json:"html"`

	UpdatedAt rawjson.String `json:"updatedAt"`
}

// ContentPage maps a raw page to its canonical form.
func ContentPage(raw RawContentPage) domain.ContentPage {
	return domain.ContentPage{
		Slug:      rawjson.FirstString(raw.Slug, raw.Key),
		Title:     rawjson.FirstString(raw.Title, raw.Heading),
		Body:      rawjson.FirstString(raw.Body, raw.Content, raw.HTML),
		UpdatedAt: raw.UpdatedAt.Value(),
	}
}
