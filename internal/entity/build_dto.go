package entity

// GenerateBuildRequest is the body of POST /aibuilder.
type GenerateBuildRequest struct {
	Budget  float64 `json:"budget"`
	Purpose string  `json:"purpose"`
	Prefs   string  `json:"prefs,omitempty"`
}

func (r *GenerateBuildRequest) ToUserInput() UserInput {
	return UserInput{
		Budget:  r.Budget,
		Purpose: r.Purpose,
		Prefs:   r.Prefs,
	}
}

// CreateBuildRequest is the body of POST /builds: a manually assembled build.
type CreateBuildRequest struct {
	Name        string                        `json:"name,omitempty"`
	OwnerUserID string                        `json:"owner_user_id,omitempty"`
	Components  map[Category]*ComponentRecord `json:"components"`
}

// UpdateBuildRequest overwrites the mutable fields of an existing build.
// TotalPrice is derived and recomputed server-side, never accepted as input.
type UpdateBuildRequest struct {
	Name        *string                       `json:"name,omitempty"`
	OwnerUserID *string                       `json:"owner_user_id,omitempty"`
	Components  map[Category]*ComponentRecord `json:"components,omitempty"`
}

// ExportFormat selects the rendering of a build quote.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)
