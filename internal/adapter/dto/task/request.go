package task

// UpdatePreviewRequest edits a pending preview. All fields are optional;
// only present fields are applied.
type UpdatePreviewRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,taskpriority"`
	DueDate  *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ChildID  *string `json:"child_id,omitempty" validate:"omitempty,uuid4"`
}

// ConfirmPreviewRequest confirms a pending preview into a task
type ConfirmPreviewRequest struct {
	ConfirmedBy string `json:"confirmed_by" validate:"required,uuid4"`
}

// ListTasksRequest filters the confirmed task listing
type ListTasksRequest struct {
	HouseholdID string `query:"household_id" validate:"required,uuid4"`
	Category    string `query:"category" validate:"omitempty,taskcategory"`
	Priority    string `query:"priority" validate:"omitempty,taskpriority"`
	ChildID     string `query:"child_id" validate:"omitempty,uuid4"`
}
