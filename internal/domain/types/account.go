package types

// Account is a member of the network, including government entities.
type Account struct {
	ID             UserID `json:"id"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	Verified       bool   `json:"verified"`
	Coins          int64  `json:"coins"`
	Followers      int    `json:"followers"`
	Following      int    `json:"following"`
	RegistrationID string `json:"registration_id,omitempty"`

	Bio           string `json:"bio,omitempty"`
	AvatarRef     string `json:"avatar_ref,omitempty"`
	CaregiverName string `json:"caregiver_name,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
}

// ProfilePatch carries optional profile edits. Nil fields are left untouched.
type ProfilePatch struct {
	Name          *string
	Bio           *string
	CaregiverName *string
	City          *string
	State         *string
	Country       *string
}

// ProfileStats summarises an account's own posts.
type ProfileStats struct {
	Posts      int `json:"posts"`
	TotalLikes int `json:"total_likes"`
}
