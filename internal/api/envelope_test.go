package api

import (
	"encoding/json"
	"testing"
)

func TestUnwrapEnvelopedBody(t *testing.T) {
	body := []byte(`{"success":true,"data":{"draws":[]},"meta":{"pagination":{"page":1}}}`)
	env := Unwrap(body)

	if string(env.Data) != `{"draws":[]}` {
		t.Fatalf("data = %s", env.Data)
	}
	if env.Message != "" {
		t.Fatalf("message = %q, want empty", env.Message)
	}
	if env.Meta == nil || env.Meta.Pagination == nil {
		t.Fatal("expected pagination meta")
	}
	if env.Meta.Pagination.Page != 1 {
		t.Fatalf("page = %d, want 1", env.Meta.Pagination.Page)
	}
}

func TestUnwrapBarePayload(t *testing.T) {
	body := []byte(`{"draws":[]}`)
	env := Unwrap(body)

	if string(env.Data) != `{"draws":[]}` {
		t.Fatalf("data = %s", env.Data)
	}
	if env.Message != "" || env.Meta != nil {
		t.Fatalf("bare payload must carry no message/meta: %+v", env)
	}
}

func TestUnwrapRequiresBothKeys(t *testing.T) {
	// A payload that merely has a "data" key is not an envelope.
	body := []byte(`{"data":{"x":1}}`)
	env := Unwrap(body)
	if string(env.Data) != string(body) {
		t.Fatalf("data = %s, want whole body", env.Data)
	}

	// Same for a bare success flag.
	body = []byte(`{"success":true}`)
	env = Unwrap(body)
	if string(env.Data) != string(body) {
		t.Fatalf("data = %s, want whole body", env.Data)
	}
}

func TestUnwrapNonObjectBody(t *testing.T) {
	body := []byte(`[1,2,3]`)
	env := Unwrap(body)
	if string(env.Data) != `[1,2,3]` {
		t.Fatalf("data = %s", env.Data)
	}
}

func TestUnwrapMessage(t *testing.T) {
	body := []byte(`{"success":true,"data":null,"message":"queued"}`)
	env := Unwrap(body)
	if env.Message != "queued" {
		t.Fatalf("message = %q, want queued", env.Message)
	}
	if string(env.Data) != "null" {
		t.Fatalf("data = %s, want null literal", env.Data)
	}
}

func TestMetaPaginationAlternateNames(t *testing.T) {
	var m Meta
	if err := json.Unmarshal([]byte(`{"pagination":{"currentPage":"3","pages":9,"total":120}}`), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Pagination == nil {
		t.Fatal("expected pagination")
	}
	if m.Pagination.Page != 3 || m.Pagination.TotalPages != 9 || m.Pagination.TotalCount != 120 {
		t.Fatalf("unexpected pagination %+v", *m.Pagination)
	}
}

func TestEnvelopeDecode(t *testing.T) {
	env := Unwrap([]byte(`{"success":true,"data":{"count":3}}`))
	var payload struct {
		Count int `json:"count"`
	}
	if err := env.Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Count != 3 {
		t.Fatalf("count = %d, want 3", payload.Count)
	}
}
