package model

import "time"

// Task statuses and priorities accepted by the tasks API.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents a work item managed through the tasks API.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description,omitempty" gorm:"size:1000"`
	Status      string     `json:"status" gorm:"size:20;default:'pending';index"`
	Priority    string     `json:"priority" gorm:"size:10;default:'medium'"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty" gorm:"size:255;index"`
	CreatedBy   string     `json:"createdBy,omitempty" gorm:"size:255"`
	UpdatedBy   string     `json:"updatedBy,omitempty" gorm:"size:255"`
	Deleted     bool       `json:"deleted,omitempty" gorm:"default:false;index"`
	DeletedBy   string     `json:"deletedBy,omitempty" gorm:"size:255"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
