package validation

// Login is the payload schema for user and business login.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// BusinessSignup is the payload schema for business registration.
type BusinessSignup struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
}

// RatingCreate is the payload schema for submitting a star rating.
type RatingCreate struct {
	BusinessID    string `json:"business_id" validate:"required,uuid"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review        string `json:"review" validate:"omitempty,max=1000"`
	ReviewerName  string `json:"reviewer_name" validate:"omitempty,max=100"`
	ReviewerEmail string `json:"reviewer_email" validate:"omitempty,email"`
}

// AnnouncementCreate is the payload schema for admin announcements.
type AnnouncementCreate struct {
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=1000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// ApplyDefaults fills omitted optional fields.
func (a *AnnouncementCreate) ApplyDefaults() {
	if a.Priority == "" {
		a.Priority = "normal"
	}
}
