package validation

// rfc3339 is the datetime layout accepted for due dates.
const rfc3339 = "2006-01-02T15:04:05Z07:00"

// TaskCreate is the payload schema for creating a task.
type TaskCreate struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AssignedTo  string `json:"assignedTo" validate:"omitempty,email"`
}

// ApplyDefaults fills omitted optional fields.
func (t *TaskCreate) ApplyDefaults() {
	if t.Status == "" {
		t.Status = "pending"
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
}

// TaskUpdate is the partial payload schema for updating a task. Any
// subset of fields may be supplied.
type TaskUpdate struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AssignedTo  *string `json:"assignedTo" validate:"omitempty,email"`
}
