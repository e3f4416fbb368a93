package task

import (
	"time"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// ChargeResponse exposes the charge weight breakdown
type ChargeResponse struct {
	Mental    float64 `json:"mental"`
	Time      float64 `json:"time"`
	Emotional float64 `json:"emotional"`
	Physical  float64 `json:"physical"`
	Total     float64 `json:"total"`
}

// PreviewResponse is the API view of a task preview
type PreviewResponse struct {
	ID                 string         `json:"id"`
	HouseholdID        string         `json:"household_id"`
	Title              string         `json:"title"`
	AltTitles          []string       `json:"alt_titles,omitempty"`
	Category           string         `json:"category"`
	Priority           string         `json:"priority"`
	DueDate            *time.Time     `json:"due_date,omitempty"`
	Charge             ChargeResponse `json:"charge"`
	ChildID            *string        `json:"child_id,omitempty"`
	SuggestedAssignees []string       `json:"suggested_assignees,omitempty"`
	Status             string         `json:"status"`
	ExpiresAt          time.Time      `json:"expires_at"`
}

// NewPreviewResponse maps a preview entity to its response
func NewPreviewResponse(p *entities.TaskPreview) *PreviewResponse {
	resp := &PreviewResponse{
		ID:          p.ID.String(),
		HouseholdID: p.HouseholdID.String(),
		Title:       p.Title,
		AltTitles:   p.AltTitles,
		Category:    string(p.Category),
		Priority:    string(p.Priority),
		DueDate:     p.DueDate,
		Charge: ChargeResponse{
			Mental:    p.Charge.Mental,
			Time:      p.Charge.Time,
			Emotional: p.Charge.Emotional,
			Physical:  p.Charge.Physical,
			Total:     p.Charge.Total,
		},
		Status:    string(p.Status),
		ExpiresAt: p.ExpiresAt,
	}
	if p.ChildID != nil {
		childID := p.ChildID.String()
		resp.ChildID = &childID
	}
	for _, id := range p.SuggestedAssignees {
		resp.SuggestedAssignees = append(resp.SuggestedAssignees, id.String())
	}
	return resp
}

// TaskResponse is the API view of a confirmed task
type TaskResponse struct {
	ID          string         `json:"id"`
	PreviewID   string         `json:"preview_id"`
	HouseholdID string         `json:"household_id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Charge      ChargeResponse `json:"charge"`
	ChildID     *string        `json:"child_id,omitempty"`
	AssigneeID  *string        `json:"assignee_id,omitempty"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
}

// NewTaskResponse maps a confirmed task entity to its response
func NewTaskResponse(t *entities.ConfirmedTask) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID.String(),
		PreviewID:   t.PreviewID.String(),
		HouseholdID: t.HouseholdID.String(),
		Title:       t.Title,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Charge: ChargeResponse{
			Mental:    t.Charge.Mental,
			Time:      t.Charge.Time,
			Emotional: t.Charge.Emotional,
			Physical:  t.Charge.Physical,
			Total:     t.Charge.Total,
		},
		ConfirmedAt: t.ConfirmedAt,
	}
	if t.ChildID != nil {
		childID := t.ChildID.String()
		resp.ChildID = &childID
	}
	if t.AssigneeID != nil {
		assigneeID := t.AssigneeID.String()
		resp.AssigneeID = &assigneeID
	}
	return resp
}

// NewTaskListResponse maps a slice of tasks
func NewTaskListResponse(tasks []*entities.ConfirmedTask) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

// NewPreviewListResponse maps a slice of previews
func NewPreviewListResponse(previews []*entities.TaskPreview) []*PreviewResponse {
	out := make([]*PreviewResponse, 0, len(previews))
	for _, p := range previews {
		out = append(out, NewPreviewResponse(p))
	}
	return out
}
