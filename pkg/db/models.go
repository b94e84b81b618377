package db

import (
	"encoding/json"
	"time"
)

// ApplicationStatusApproved is the only application status whose answers feed member profiles
const ApplicationStatusApproved = "Approved"

// Task represents a ministry task that needs staffing
type Task struct {
	ID         string
	MinistryID string
	Title      string
	StartAt    time.Time
	EndAt      time.Time
}

// Member represents a person who belongs to a branch ministry
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// Requirement represents a questionnaire item a ministry asks applicants to answer
type Requirement struct {
	ID         string
	MinistryID string
	Title      string
	Type       string
	IsActive   bool
}

// Application represents a member's application to join a ministry
type Application struct {
	ID          string
	MinistryID  string
	ApplicantID string
	Status      string
}

// Answer represents a single questionnaire answer. Raw is stored as-is and may be
// double-encoded JSON.
type Answer struct {
	ApplicationID string
	RequirementID string
	Raw           json.RawMessage
}

// RoleSlot represents a named staffing need on a task with a required headcount
type RoleSlot struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	RoleName    string `json:"roleName"`
	QtyRequired int    `json:"qtyRequired"`
}

// Assignment records that a member fills one unit of a role slot on a task.
// A member holds at most one assignment per task.
type Assignment struct {
	ID         string
	TaskID     string
	MemberID   string
	SlotID     string
	AssignedAt time.Time
}
