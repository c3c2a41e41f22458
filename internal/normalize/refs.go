// Package normalize converts the loosely-shaped records the upstream API
// returns into canonical domain records. Every function here is pure and
// lenient: a missing or malformed field becomes a documented default, never
// an error. Normalizing an already-canonical record yields the same record,
// so denormalized snapshots can be re-normalized freely.
package normalize

import (
	"strings"

	"prize-portal-service/internal/rawjson"
)

// competitionRef resolves a competition relation that may arrive as a bare
// id, an embedded object, or a pair of flat denormalized fields on the
// parent record.
func competitionRef(ref rawjson.Ref, flatID, flatTitle rawjson.String) (id, title string) {
	id = ref.ID
	if id == "" {
		id = flatID.Value()
	}
	title = flatTitle.Value()
	if ref.Populated() {
		var snap struct {
			Title rawjson.String `json:"title"`
			Name  rawjson.String `json:"name"`
		}
		if err := ref.Decode(&snap); err == nil {
			if embedded := rawjson.FirstString(snap.Title, snap.Name); embedded != "" {
				title = embedded
			}
		}
	}
	return id, title
}

// userRef resolves a user relation the same way, deriving a display name
// from first+last when the embedded object has no explicit name field.
func userRef(ref rawjson.Ref, flatID, flatName rawjson.String) (id, name string) {
	id = ref.ID
	if id == "" {
		id = flatID.Value()
	}
	name = flatName.Value()
	if ref.Populated() {
		var snap struct {
			Name       rawjson.String `json:"name"`
			FirstName  rawjson.String `json:"firstName"`
			FirstSnake rawjson.String `json:"first_name"`
			LastName   rawjson.String `json:"lastName"`
			LastSnake  rawjson.String `json:"last_name"`
		}
		if err := ref.Decode(&snap); err == nil {
			embedded := rawjson.FullName(
				snap.Name.Value(),
				rawjson.FirstString(snap.FirstName, snap.FirstSnake),
				rawjson.FirstString(snap.LastName, snap.LastSnake),
			)
			if embedded != "" {
				name = embedded
			}
		}
	}
	return id, name
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
