// Package api is the single seam between this service and the upstream
// platform API: it owns the HTTP client, the response envelope contract, and
// the error model. Nothing above this package branches on transport shape.
package api

import (
	"encoding/json"

	"prize-portal-service/internal/rawjson"
)

// Pagination is the canonical pagination block carried in response metadata.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// Meta carries response metadata from enveloped responses.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	*m = Meta{}
	var raw struct {
		Pagination *struct {
			Page        rawjson.Number `json:"page"`
			CurrentPage rawjson.Number `json:"currentPage"`
			TotalPages  rawjson.Number `json:"totalPages"`
			Pages       rawjson.Number `json:"pages"`
			TotalCount  rawjson.Number `json:"totalCount"`
			Total       rawjson.Number `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if raw.Pagination == nil {
		return nil
	}
	m.Pagination = &Pagination{
		Page:       rawjson.FirstNumber(raw.Pagination.Page, raw.Pagination.CurrentPage).Int(),
		TotalPages: rawjson.FirstNumber(raw.Pagination.TotalPages, raw.Pagination.Pages).Int(),
		TotalCount: rawjson.FirstNumber(raw.Pagination.TotalCount, raw.Pagination.Total).Int(),
	}
	return nil
}

// Envelope is the unified response shape every service call works with.
type Envelope struct {
	Data    json.RawMessage
	Message string
	Meta    *Meta
}

// Decode unmarshals the payload into v. An empty payload is a no-op.
func (e Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// DecodeList unmarshals a list payload into v. The upstream sends lists
// either bare (`[...]`) or wrapped under a key (`{"draws":[...]}`); both are
// accepted. Returns false when neither shape matches, which callers treat as
// an empty list.
func (e Envelope) DecodeList(key string, v any) bool {
	data := trimmed(e.Data)
	if len(data) == 0 {
		return false
	}
	if data[0] == '[' {
		return json.Unmarshal(data, v) == nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// DecodeKeyed unmarshals the payload found under key. Only the wrapped shape
// is accepted; a missing wrapper returns false so callers can signal
// structural absence.
func (e Envelope) DecodeKeyed(key string, v any) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &obj); err != nil {
		return false
	}
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// DecodeEntity unmarshals a single-entity payload into v, accepting the
// wrapped shape first and falling back to a bare entity object (recognized
// by an id field).
func (e Envelope) DecodeEntity(key string, v any) bool {
	if e.DecodeKeyed(key, v) {
		return true
	}
	var probe struct {
		MongoID json.RawMessage `json:"_id"`
		ID      json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(e.Data, &probe); err != nil {
		return false
	}
	if probe.MongoID == nil && probe.ID == nil {
		return false
	}
	return json.Unmarshal(e.Data, v) == nil
}

func trimmed(data json.RawMessage) json.RawMessage {
	for len(data) > 0 && (data[0] == ' ' || data[0] == '\t' || data[0] == '\n' || data[0] == '\r') {
		data = data[1:]
	}
	return data
}

func isNull(data json.RawMessage) bool {
	return string(trimmed(data)) == "null"
}

// Unwrap normalizes the two envelope shapes the upstream uses. A body that
// is an object carrying both a success indicator and a data key is treated
// as enveloped; any other body is the payload itself.
func Unwrap(body []byte) Envelope {
	var probe struct {
		Success json.RawMessage `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message *string         `json:"message"`
		Meta    *Meta           `json:"meta"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Success != nil && probe.Data != nil {
		env := Envelope{Data: probe.Data, Meta: probe.Meta}
		if probe.Message != nil {
			env.Message = *probe.Message
		}
		return env
	}
	return Envelope{Data: append(json.RawMessage(nil), body...)}
}
