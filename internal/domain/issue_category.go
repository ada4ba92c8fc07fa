package domain

// IssueCategory classifies complaints and belongs to exactly one department.
type IssueCategory struct {
	Code           string
	Name           string
	DepartmentCode string
	DepartmentName string
	Status         RecordStatus
}
