package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PreviewStatus represents the lifecycle state of a task preview
type PreviewStatus string

const (
	PreviewStatusPending   PreviewStatus = "pending"
	PreviewStatusConfirmed PreviewStatus = "confirmed"
	PreviewStatusCancelled PreviewStatus = "cancelled"
	PreviewStatusExpired   PreviewStatus = "expired"
)

// TaskPriority is the priority assigned to a generated task
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ChargeWeight is the multi-component workload estimate of a task.
// Components are the category's fixed base weights; Total is their sum scaled
// by the priority multiplier.
type ChargeWeight struct {
	Mental    float64 `json:"mental"`
	Time      float64 `json:"time"`
	Emotional float64 `json:"emotional"`
	Physical  float64 `json:"physical"`
	Total     float64 `json:"total"`
}

// TaskPreview is a not-yet-committed task proposal generated from one
// extraction. It is mutated only through the preview store's lifecycle
// transitions.
type TaskPreview struct {
	ID                 uuid.UUID     `json:"id"`
	ExtractionID       uuid.UUID     `json:"extraction_id"`
	HouseholdID        uuid.UUID     `json:"household_id"`
	Title              string        `json:"title"`
	AltTitles          []string      `json:"alt_titles,omitempty"`
	Category           TaskCategory  `json:"category"`
	Priority           TaskPriority  `json:"priority"`
	DueDate            *time.Time    `json:"due_date,omitempty"`
	Charge             ChargeWeight  `json:"charge"`
	ChildID            *uuid.UUID    `json:"child_id,omitempty"`
	SuggestedAssignees []uuid.UUID   `json:"suggested_assignees,omitempty"`
	Status             PreviewStatus `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	ExpiresAt          time.Time     `json:"expires_at"`
}

// EffectiveStatus reports the status as of now: a pending preview past its
// expiry is expired even if no explicit transition has run.
func (p *TaskPreview) EffectiveStatus(now time.Time) PreviewStatus {
	if p.Status == PreviewStatusPending && now.After(p.ExpiresAt) {
		return PreviewStatusExpired
	}
	return p.Status
}

// IsConfirmable reports whether a confirm transition is allowed as of now
func (p *TaskPreview) IsConfirmable(now time.Time) bool {
	return p.EffectiveStatus(now) == PreviewStatusPending
}

// Clone returns a copy with its own slice backing so stored previews are
// never shared with callers
func (p *TaskPreview) Clone() *TaskPreview {
	clone := *p
	if p.AltTitles != nil {
		clone.AltTitles = append([]string(nil), p.AltTitles...)
	}
	if p.SuggestedAssignees != nil {
		clone.SuggestedAssignees = append([]uuid.UUID(nil), p.SuggestedAssignees...)
	}
	if p.DueDate != nil {
		due := *p.DueDate
		clone.DueDate = &due
	}
	if p.ChildID != nil {
		child := *p.ChildID
		clone.ChildID = &child
	}
	return &clone
}

// ConfirmedTask is the final immutable output handed to the task sink.
// Created exactly once per preview, on confirmation.
type ConfirmedTask struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	PreviewID   uuid.UUID    `json:"preview_id" gorm:"type:uuid;not null;uniqueIndex"`
	HouseholdID uuid.UUID    `json:"household_id" gorm:"type:uuid;not null;index"`
	Title       string       `json:"title" gorm:"type:text;not null"`
	Category    TaskCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);not null"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Charge      ChargeWeight `json:"charge" gorm:"type:jsonb;serializer:json"`
	ChildID     *uuid.UUID   `json:"child_id,omitempty" gorm:"type:uuid"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty" gorm:"type:uuid"`
	// Signals is the extraction snapshot at confirmation time, kept for audit
	Signals     datatypes.JSON `json:"signals,omitempty" gorm:"type:jsonb"`
	ConfirmedBy uuid.UUID      `json:"confirmed_by" gorm:"type:uuid;not null"`
	ConfirmedAt time.Time      `json:"confirmed_at" gorm:"not null"`
}

// SetSignals attaches the marshaled extraction to the task
func (t *ConfirmedTask) SetSignals(raw []byte) {
	t.Signals = datatypes.JSON(raw)
}

// TableName specifies the table name for GORM
func (ConfirmedTask) TableName() string {
	return "confirmed_tasks"
}

// NewConfirmedTask freezes a preview into a task at confirmation time
func NewConfirmedTask(preview *TaskPreview, confirmedBy uuid.UUID, now time.Time) *ConfirmedTask {
	task := &ConfirmedTask{
		ID:          uuid.New(),
		PreviewID:   preview.ID,
		HouseholdID: preview.HouseholdID,
		Title:       preview.Title,
		Category:    preview.Category,
		Priority:    preview.Priority,
		Charge:      preview.Charge,
		ConfirmedBy: confirmedBy,
		ConfirmedAt: now,
	}
	if preview.DueDate != nil {
		due := *preview.DueDate
		task.DueDate = &due
	}
	if preview.ChildID != nil {
		child := *preview.ChildID
		task.ChildID = &child
	}
	if len(preview.SuggestedAssignees) > 0 {
		assignee := preview.SuggestedAssignees[0]
		task.AssigneeID = &assignee
	}
	return task
}
