package voice

// InitUploadRequest opens a chunked audio upload
type InitUploadRequest struct {
	HouseholdID  string `json:"household_id" validate:"required,uuid4"`
	FileName     string `json:"file_name" validate:"required,max=255"`
	MimeType     string `json:"mime_type" validate:"required"`
	DeclaredSize int64  `json:"declared_size" validate:"required,gt=0"`
}

// CompleteUploadRequest finalizes an upload and starts transcription.
// Language is optional; "auto" or empty falls back to the default.
type CompleteUploadRequest struct {
	Language string `json:"language,omitempty" validate:"omitempty,max=10"`
}

// RosterChild is one child entry in a roster update
type RosterChild struct {
	ID        string   `json:"id" validate:"required,uuid4"`
	Name      string   `json:"name" validate:"required,max=100"`
	Nicknames []string `json:"nicknames,omitempty" validate:"dive,max=100"`
	Age       int      `json:"age" validate:"gte=0,lte=25"`
}

// RosterMember is one adult entry in a roster update
type RosterMember struct {
	ID          string  `json:"id" validate:"required,uuid4"`
	Name        string  `json:"name" validate:"required,max=100"`
	Role        string  `json:"role" validate:"required,max=50"`
	CurrentLoad float64 `json:"current_load" validate:"gte=0"`
	Capacity    float64 `json:"capacity" validate:"gte=0"`
}

// SetRosterRequest replaces a household's roster
type SetRosterRequest struct {
	Children []RosterChild  `json:"children" validate:"dive"`
	Members  []RosterMember `json:"members" validate:"dive"`
}
