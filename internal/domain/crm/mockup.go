package crm

// MockupStatus represents the review state of a design mockup
type MockupStatus string

const (
	MockupStatusDraft          MockupStatus = "draft"
	MockupStatusInReview       MockupStatus = "in_review"
	MockupStatusApproved       MockupStatus = "approved"
	MockupStatusRevisionNeeded MockupStatus = "revision_needed"
	MockupStatusPending        MockupStatus = "pending"
)

// ParseMockupStatus matches a raw status cell against the mockup vocabulary,
// falling back to pending for anything unrecognized or empty
func ParseMockupStatus(raw string) MockupStatus {
	switch s := MockupStatus(NormalizeStatus(raw)); s {
	case MockupStatusDraft, MockupStatusInReview, MockupStatusApproved, MockupStatusRevisionNeeded:
		return s
	default:
		return MockupStatusPending
	}
}

// Mockup is the typed projection of a row in the Mockups sheet
type Mockup struct {
	ID         string       `json:"id"`
	CourseID   string       `json:"course_id"`
	Type       string       `json:"type"`
	Notes      string       `json:"notes"`
	Status     MockupStatus `json:"status"`
	ZiflowLink string       `json:"ziflow_link"`
	CreatedAt  string       `json:"created_at"`
	RowIndex   int          `json:"row_index"`
}

// MockupFromRow projects a sheet row into a Mockup
func MockupFromRow(row Row, rowIndex int) Mockup {
	return Mockup{
		ID:         row.StringAt(0),
		CourseID:   row.StringAt(1),
		Type:       row.StringAt(2),
		Notes:      row.StringAt(3),
		Status:     ParseMockupStatus(row.StringAt(4)),
		ZiflowLink: row.StringAt(5),
		CreatedAt:  row.StringAt(6),
		RowIndex:   rowIndex,
	}
}

// Row serializes the mockup back into its positional sheet shape
func (m Mockup) Row() Row {
	return StringsRow(m.ID, m.CourseID, m.Type, m.Notes, string(m.Status),
		m.ZiflowLink, m.CreatedAt)
}
