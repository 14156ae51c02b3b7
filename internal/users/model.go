package users

import "time"

type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// Profile is an account holder. PasswordHash is empty for Google-only accounts.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"fullName"`
	ChildName    string    `json:"childName,omitempty"`
	Age          *int      `json:"age,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfilePatch carries optional profile edits; nil fields are left unchanged.
type ProfilePatch struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=1,max=120"`
	ChildName *string `json:"childName" validate:"omitempty,max=120"`
	Age       *int    `json:"age" validate:"omitempty,min=0,max=120"`
}
