package domain

// CompetitionStatus enumerates the lifecycle states a competition can be in.
type CompetitionStatus string

const (
	StatusDraft     CompetitionStatus = "draft"
	StatusUpcoming  CompetitionStatus = "upcoming"
	StatusActive    CompetitionStatus = "active"
	StatusDrawing   CompetitionStatus = "drawing"
	StatusCompleted CompetitionStatus = "completed"
	StatusCancelled CompetitionStatus = "cancelled"
)

// DefaultCompetitionStatus is used when the upstream sends a status outside
// the known set.
const DefaultCompetitionStatus = StatusUpcoming

// KnownCompetitionStatus reports whether s is one of the closed status set.
func KnownCompetitionStatus(s CompetitionStatus) bool {
	switch s {
	case StatusDraft, StatusUpcoming, StatusActive, StatusDrawing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Image describes a single competition image. Thumbnail and PublicID are
// optional; URL is always present.
type Image struct {
	URL       string `json:"url"`
	PublicID  string `json:"publicId,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Question is the skill question attached to a competition entry.
type Question struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Competition is the canonical competition record. Numeric fields are never
// absent; a missing or malformed upstream value becomes zero.
type Competition struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Prize       string            `json:"prize"`
	PrizeValue  float64           `json:"prizeValue"`
	TicketPrice float64           `json:"ticketPrice"`
	MaxTickets  int               `json:"maxTickets"`
	SoldTickets int               `json:"soldTickets"`
	Status      CompetitionStatus `json:"status"`
	Category    string            `json:"category,omitempty"`
	Featured    bool              `json:"featured"`
	Images      []Image           `json:"images"`
	Question    *Question         `json:"question,omitempty"`
	EndsAt      string            `json:"endsAt,omitempty"`
}
