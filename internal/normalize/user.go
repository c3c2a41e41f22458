package normalize

import (
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/rawjson"
)

// RawUser is an account record as the upstream may send it, shared by the
// profile endpoint and the admin list endpoints.
type RawUser struct {
	MongoID rawjson.String `json:"_id"`
	ID      rawjson.String `json:"id"`

	Email rawjson.String `json:"email"`

	Name       rawjson.String `json:"name"`
	FirstName  rawjson.String `json:"firstName"`
	FirstSnake rawjson.String `json:"first_name"`
	LastName   rawjson.String `json:"lastName"`
	LastSnake  rawjson.String `json:"last_name"`

	Phone       rawjson.String `json:"phone"`
	PhoneNumber rawjson.String `json:"phoneNumber"`

	Role rawjson.String `json:"role"`

	IsVerified rawjson.Bool `json:"isVerified"`
	Verified   rawjson.Bool `json:"verified"`

	IsActive rawjson.Bool `json:"isActive"`
	Active   rawjson.Bool `json:"active"`

	SubscribedToNewsletter rawjson.Bool `json:"subscribedToNewsletter"`
	Newsletter             rawjson.Bool `json:"newsletter"`

	CreatedAt rawjson.String `json:"createdAt"`
}

// User maps a raw account record to its canonical form. Contact fields
// default to empty strings; IsActive defaults true; the display name falls
// back to first+last when no explicit name is present.
func User(raw RawUser) domain.User {
	first := rawjson.FirstString(raw.FirstName, raw.FirstSnake)
	last := rawjson.FirstString(raw.LastName, raw.LastSnake)

	return domain.User{
		ID:                     rawjson.FirstString(raw.MongoID, raw.ID),
		Email:                  raw.Email.Value(),
		FirstName:              first,
		LastName:               last,
		Name:                   rawjson.FullName(raw.Name.Value(), first, last),
		Phone:                  rawjson.FirstString(raw.Phone, raw.PhoneNumber),
		Role:                   Role(raw.Role.Value()),
		IsVerified:             rawjson.FirstBool(raw.IsVerified, raw.Verified).Or(false),
		IsActive:               rawjson.FirstBool(raw.IsActive, raw.Active).Or(true),
		SubscribedToNewsletter: rawjson.FirstBool(raw.SubscribedToNewsletter, raw.Newsletter).Or(false),
		CreatedAt:              raw.CreatedAt.Value(),
	}
}

// Role matches a raw role string against the closed set, falling back to the
// documented default for anything unrecognized.
func Role(raw string) domain.Role {
	role := domain.Role(lower(raw))
	if domain.KnownRole(role) {
		return role
	}
	return domain.DefaultRole
}
