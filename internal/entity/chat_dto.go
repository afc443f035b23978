package entity

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name              string `json:"name"`
	Age               int    `json:"age,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Occupation        string `json:"occupation,omitempty"`
	Location          string `json:"location,omitempty"`
	PersonalisationID string `json:"personalisation_id,omitempty"`
}

// UpdateUserRequest carries partial user updates; nil fields stay untouched.
type UpdateUserRequest struct {
	Name              *string `json:"name,omitempty"`
	Age               *int    `json:"age,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	Occupation        *string `json:"occupation,omitempty"`
	Location          *string `json:"location,omitempty"`
	PersonalisationID *string `json:"personalisation_id,omitempty"`
}

// CreateChatroomRequest is the body of POST /chatrooms.
type CreateChatroomRequest struct {
	UserID string `json:"user_id"`
	Theme  string `json:"theme"`
}

// AddMessageRequest is the body of POST /chatrooms/{chatroom_id}/messages.
type AddMessageRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// CreatePersonalisationRequest is the body of POST /personalisation.
type CreatePersonalisationRequest struct {
	Answers []PersonalisationAnswer `json:"answers"`
}

// UpdatePersonalisationRequest replaces the stored answers.
type UpdatePersonalisationRequest struct {
	Answers []PersonalisationAnswer `json:"answers"`
}
