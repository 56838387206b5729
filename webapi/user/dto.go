package user

// UpdateUserInput is the request body for profile updates. Absent fields
// are left untouched.
type UpdateUserInput struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
}
