package entity

import "time"

// ComponentRecord is one purchasable part from the catalog. Lien is the
// stable catalog slug and the cache key; records are replaced on refetch,
// never mutated in place.
type ComponentRecord struct {
	Lien        string            `json:"lien"`
	Title       string            `json:"title"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock,omitempty"`
	CategoryTag string            `json:"category_tag"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// PriceRange is the admissible price window for one category, derived from
// the total budget and the static fraction table. Never persisted.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BudgetFraction is one row of the per-category budget fraction table.
type BudgetFraction struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserInput is the build request: total budget, purpose and free-text
// preferences.
type UserInput struct {
	Budget  float64 `json:"budget"`
	Purpose string  `json:"purpose"`
	Prefs   string  `json:"prefs,omitempty"`
}

// Build is one complete or partial assignment of components across all
// categories. A nil slot means the category stayed unresolved; TotalPrice is
// always the sum over the resolved slots.
type Build struct {
	BuildID     string                        `json:"build_id"`
	Name        string                        `json:"name,omitempty"`
	OwnerUserID string                        `json:"owner_user_id,omitempty"`
	Components  map[Category]*ComponentRecord `json:"components"`
	TotalPrice  float64                       `json:"total_price"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// ComputeTotalPrice recomputes the derived total from the resolved slots.
func (b *Build) ComputeTotalPrice() {
	var total float64
	for _, c := range b.Components {
		if c != nil {
			total += c.Price
		}
	}
	b.TotalPrice = total
}

// User is a chat persona owner.
type User struct {
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Age               int       `json:"age,omitempty"`
	Gender            string    `json:"gender,omitempty"`
	Occupation        string    `json:"occupation,omitempty"`
	Location          string    `json:"location,omitempty"`
	PersonalisationID string    `json:"personalisation_id,omitempty"`
	Chatrooms         []string  `json:"chatrooms"`
	CreatedAt         time.Time `json:"created_at"`
}

// Message is one chat message inside a chatroom document.
type Message struct {
	MessageID string    `json:"message_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Chatroom holds one conversation thread and its messages.
type Chatroom struct {
	ChatroomID string    `json:"chatroom_id"`
	UserID     string    `json:"user_id"`
	Theme      string    `json:"theme"`
	Messages   []Message `json:"messages"`
	CreatedAt  time.Time `json:"created_at"`
}

// PersonalisationAnswer is one answered onboarding question.
type PersonalisationAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Personalisation stores a user's onboarding answers, referenced from the
// user document and fed into chat reply prompts.
type Personalisation struct {
	PersonalisationID string                  `json:"personalisation_id"`
	Answers           []PersonalisationAnswer `json:"answers"`
	CreatedAt         time.Time               `json:"created_at"`
}
