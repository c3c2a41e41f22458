package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"prize-portal-service/internal/domain"
)

func TestUserDefaults(t *testing.T) {
	got := User(RawUser{})
	if got.Email != "" || got.Phone != "" || got.Name != "" {
		t.Fatalf("contact fields must default to empty strings: %+v", got)
	}
	if got.Role != domain.RoleUser {
		t.Fatalf("role = %q, want default user", got.Role)
	}
	if !got.IsActive {
		t.Fatal("isActive must default true")
	}
	if got.IsVerified || got.SubscribedToNewsletter {
		t.Fatalf("other flags must default false: %+v", got)
	}
}

func TestUserNameFallbackChain(t *testing.T) {
	explicit := User(decodeRaw[RawUser](t, `{"_id":"u1","name":"A. Person","firstName":"Other"}`))
	if explicit.Name != "A. Person" {
		t.Fatalf("explicit name must win, got %q", explicit.Name)
	}

	synthesized := User(decodeRaw[RawUser](t, `{"_id":"u2","firstName":" Ada ","lastName":" Lovelace "}`))
	if synthesized.Name != "Ada Lovelace" {
		t.Fatalf("synthesized name = %q", synthesized.Name)
	}

	firstOnly := User(decodeRaw[RawUser](t, `{"_id":"u3","first_name":"Ada"}`))
	if firstOnly.Name != "Ada" {
		t.Fatalf("single-name case must not carry a stray space, got %q", firstOnly.Name)
	}

	nameless := User(decodeRaw[RawUser](t, `{"_id":"u4"}`))
	if nameless.Name != "" {
		t.Fatalf("no-name case must collapse to empty, got %q", nameless.Name)
	}
}

func TestUserRoleClosedSet(t *testing.T) {
	for _, known := range []string{"user", "admin", "moderator", "super_admin"} {
		if got := Role(known); got != domain.Role(known) {
			t.Fatalf("role %q mapped to %q", known, got)
		}
	}
	for _, bogus := range []string{"", "root", "superuser", "ADMINISTRATOR"} {
		if got := Role(bogus); got != domain.RoleUser {
			t.Fatalf("role %q mapped to %q, want default", bogus, got)
		}
	}
	if got := Role(" Admin "); got != domain.RoleAdmin {
		t.Fatalf("role should be case/space-insensitive, got %q", got)
	}
}

func TestUserBooleanCoercion(t *testing.T) {
	raw := decodeRaw[RawUser](t, `{"_id":"u5","verified":"true","active":0,"newsletter":1}`)
	got := User(raw)
	if !got.IsVerified {
		t.Fatal("verified string must coerce true")
	}
	if got.IsActive {
		t.Fatal("explicit 0 must coerce to inactive")
	}
	if !got.SubscribedToNewsletter {
		t.Fatal("newsletter 1 must coerce true")
	}
}

func TestUserIdempotent(t *testing.T) {
	raw := decodeRaw[RawUser](t, `{
		"_id": "u6",
		"email": "ada@example.com",
		"first_name": "Ada",
		"last_name": "Lovelace",
		"phoneNumber": "555-0100",
		"role": "moderator",
		"verified": true,
		"newsletter": "yes",
		"createdAt": "2025-01-01"
	}`)

	once := User(raw)
	twice := renormalize(t, once, User)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("normalization is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestContentPageAlternates(t *testing.T) {
	raw := decodeRaw[RawContentPage](t, `{"key":"terms","heading":"Terms","content":"<p>...</p>","updatedAt":"2025-06-01"}`)
	got := ContentPage(raw)
	want := domain.ContentPage{Slug: "terms", Title: "Terms", Body: "<p>...</p>", UpdatedAt: "2025-06-01"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected page (-want +got):\n%s", diff)
	}
}

func TestContentPageIdempotent(t *testing.T) {
	once := ContentPage(decodeRaw[RawContentPage](t, `{"slug":"privacy","title":"Privacy","body":"text"}`))
	twice := renormalize(t, once, ContentPage)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("normalization is not idempotent (-once +twice):\n%s", diff)
	}
}
