package chat

type SendMessageCommand struct {
	SenderID    string
	RecipientID string
	Text        string
	Image       string
}

type FetchThreadCommand struct {
	ViewerID      string
	CounterpartID string
}

type MarkMessageSeenCommand struct {
	ViewerID  string
	MessageID string
}

type SignupCommand struct {
	FullName string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=12,max=72"`
	Bio      string `validate:"required,max=500"`
}

// UpdateProfileCommand changes the non-empty fields of a profile.
// ProfilePic may be a data URI, raw base64 or an existing reference.
type UpdateProfileCommand struct {
	UserID     string `validate:"required"`
	FullName   string `validate:"omitempty,max=100"`
	Bio        string `validate:"omitempty,max=500"`
	ProfilePic string
}

// IsEmpty reports whether the command changes nothing.
func (c UpdateProfileCommand) IsEmpty() bool {
	return c.FullName == "" && c.Bio == "" && c.ProfilePic == ""
}

// Counterparts is the sidebar view: every other user plus the viewer's unseen map.
type Counterparts struct {
	Users  []User    `json:"users"`
	Unseen UnseenMap `json:"unseen"`
}
