package cache

import "fmt"

// Key builders for the hierarchical {resource}:{selector} scheme. A
// write to a resource must invalidate the list key, the by-id key, and
// every filtered key whose filter value appears in the old or new
// record.

const (
	KeyUsersList     = "users:list"
	KeyTasksList     = "tasks:list"
	KeyBusinessList  = "businesses:list"
	KeyAdminStats    = "admin:stats"
	KeyAnnouncements = "admin:announcements"
)

// UserByID keys a single user record.
func UserByID(id uint) string {
	return fmt.Sprintf("users:%d", id)
}

// UserByEmail keys a user looked up by email.
func UserByEmail(email string) string {
	return "users:email:" + email
}

// TaskByID keys a single task record.
func TaskByID(id uint) string {
	return fmt.Sprintf("tasks:%d", id)
}

// TasksByStatus keys the task list filtered by status.
func TasksByStatus(status string) string {
	return "tasks:status:" + status
}

// TasksByAssignee keys the task list filtered by assignee email.
func TasksByAssignee(email string) string {
	return "tasks:assignee:" + email
}

// BusinessByID keys a single business with its ratings.
func BusinessByID(id string) string {
	return "businesses:" + id
}
