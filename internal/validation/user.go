package validation

// UserCreate is the payload schema for creating a user.
type UserCreate struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"required,gte=18,lte=120"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin moderator"`
	IsActive *bool  `json:"isActive"`
}

// ApplyDefaults fills omitted optional fields.
func (u *UserCreate) ApplyDefaults() {
	if u.Role == "" {
		u.Role = "user"
	}
	if u.IsActive == nil {
		active := true
		u.IsActive = &active
	}
}

// UserUpdate is the partial payload schema for updating a user. Any
// subset of fields may be supplied.
type UserUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Age      *int    `json:"age" validate:"omitempty,gte=18,lte=120"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin moderator"`
	IsActive *bool   `json:"isActive"`
}
