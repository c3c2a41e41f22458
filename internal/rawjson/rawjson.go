// Package rawjson decodes the loosely-shaped scalar and relation values the
// upstream API sends. Every type here is lenient: malformed input never
// produces a decode error, it produces an absent value that normalization
// replaces with a documented default.
package rawjson

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number accepts a JSON number, a numeric string, or null. Anything else
// leaves the value absent.
type Number struct {
	value   float64
	present bool
}

// Num builds a present Number, mostly for tests.
func Num(v float64) Number {
	return Number{value: v, present: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		*n = Number{value: v, present: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*n = Number{value: v, present: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Present reports whether a usable numeric value was decoded.
func (n Number) Present() bool { return n.present }

// Float returns the value with a zero fallback.
func (n Number) Float() float64 {
	if !n.present {
		return 0
	}
	return n.value
}

// Int returns the truncated value with a zero fallback.
func (n Number) Int() int {
	if !n.present {
		return 0
	}
	return int(n.value)
}

// String accepts a JSON string or a number (stringified). Anything else
// leaves the value absent.
type String struct {
	value   string
	present bool
}

// Str builds a present String, mostly for tests.
func Str(v string) String {
	return String{value: v, present: true}
}

func (s *String) UnmarshalJSON(data []byte) error {
	*s = String{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*s = String{value: v, present: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	*s = String{value: n.String(), present: true}
	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// Present reports whether a usable string was decoded.
func (s String) Present() bool { return s.present }

// Value returns the trimmed value with an empty-string fallback.
func (s String) Value() string {
	return strings.TrimSpace(s.value)
}

// Bool accepts a JSON bool, the strings "true"/"false", a 0/1 number, or
// null. Anything else leaves the value absent.
type Bool struct {
	value   bool
	present bool
}

// True and False build present Bool values, mostly for tests.
var (
	True  = Bool{value: true, present: true}
	False = Bool{value: false, present: true}
)

func (b *Bool) UnmarshalJSON(data []byte) error {
	*b = Bool{}
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case bytes.Equal(data, []byte("true")):
		*b = Bool{value: true, present: true}
	case bytes.Equal(data, []byte("false")):
		*b = Bool{value: false, present: true}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			*b = Bool{value: true, present: true}
		case "false", "0", "no":
			*b = Bool{value: false, present: true}
		}
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*b = Bool{value: v != 0, present: true}
	}
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) {
	if !b.present {
		return []byte("null"), nil
	}
	return json.Marshal(b.value)
}

// Present reports whether a usable boolean was decoded.
func (b Bool) Present() bool { return b.present }

// Or returns the value, or def when absent.
func (b Bool) Or(def bool) bool {
	if !b.present {
		return def
	}
	return b.value
}

// Ref is a relation that the upstream sends either as a bare id (string or
// number) or as a populated object. The id is always extracted; the object
// body, when present, is kept for snapshot decoding.
type Ref struct {
	ID     string
	Object json.RawMessage
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		var probe struct {
			MongoID json.RawMessage `json:"_id"`
			ID      json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil
		}
		id := DecodeID(probe.MongoID)
		if id == "" {
			id = DecodeID(probe.ID)
		}
		*r = Ref{ID: id, Object: append(json.RawMessage(nil), data...)}
		return nil
	}
	*r = Ref{ID: DecodeID(data)}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if len(r.Object) > 0 {
		return r.Object, nil
	}
	return json.Marshal(r.ID)
}

// Present reports whether the relation was set at all.
func (r Ref) Present() bool { return r.ID != "" || len(r.Object) > 0 }

// Populated reports whether the relation arrived as an embedded object.
func (r Ref) Populated() bool { return len(r.Object) > 0 }

// Decode unmarshals the embedded object into v. It is a no-op when the
// relation arrived as a bare id.
func (r Ref) Decode(v any) error {
	if !r.Populated() {
		return nil
	}
	return json.Unmarshal(r.Object, v)
}

// Image accepts either a bare URL string or an object carrying url/publicId/
// thumbnail fields under a few historical key spellings.
type Image struct {
	URL       string
	PublicID  string
	Thumbnail string
	present   bool
}

// Img builds a present Image, mostly for tests.
func Img(url, publicID, thumbnail string) Image {
	return Image{URL: url, PublicID: publicID, Thumbnail: thumbnail, present: true}
}

func (i *Image) UnmarshalJSON(data []byte) error {
	*i = Image{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if s == "" {
			return nil
		}
		*i = Image{URL: s, present: true}
		return nil
	}
	var obj struct {
		URL       *string `json:"url"`
		SecureURL *string `json:"secure_url"`
		Src       *string `json:"src"`
		PublicID  *string `json:"publicId"`
		PublicID2 *string `json:"public_id"`
		Thumbnail *string `json:"thumbnail"`
		Thumb     *string `json:"thumb"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	url := First(obj.URL, obj.SecureURL, obj.Src)
	if url == "" {
		return nil
	}
	*i = Image{
		URL:       url,
		PublicID:  First(obj.PublicID, obj.PublicID2),
		Thumbnail: First(obj.Thumbnail, obj.Thumb),
		present:   true,
	}
	return nil
}

// Present reports whether a usable image was decoded.
func (i Image) Present() bool { return i.present }

// DecodeID turns a raw JSON scalar into an id string. Numbers are formatted
// without an exponent; anything unusable yields "".
func DecodeID(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ""
	}
	return n.String()
}

// First returns the first non-nil, non-empty string in the chain. Values are
// trimmed before the emptiness check so whitespace-only fields do not win.
func First(values ...*string) string {
	for _, v := range values {
		if v == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// FirstString returns the first present, non-blank String in the chain,
// trimmed.
func FirstString(values ...String) string {
	for _, v := range values {
		if !v.present {
			continue
		}
		if trimmed := v.Value(); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// FirstNumber returns the first present Number in the chain.
func FirstNumber(values ...Number) Number {
	for _, v := range values {
		if v.present {
			return v
		}
	}
	return Number{}
}

// FirstBool returns the first present Bool in the chain.
func FirstBool(values ...Bool) Bool {
	for _, v := range values {
		if v.present {
			return v
		}
	}
	return Bool{}
}

// FullName joins first and last names, preferring an explicit full-name
// field. The no-name case collapses to "" rather than a stray space.
func FullName(name, first, last string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
