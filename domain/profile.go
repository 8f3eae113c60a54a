package domain

// Profile is the admin identity cached by the dashboard client after a
// successful login against the external backend. Everything beyond id,
// name and email is optional decoration for the dashboard header.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token,omitempty"`
	Title     string `json:"title,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Website   string `json:"website,omitempty"`
	Bio       string `json:"bio,omitempty"`
}
