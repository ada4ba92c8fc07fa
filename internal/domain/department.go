package domain

// RecordStatus marks reference data as usable or retired.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

// RecordStatuses lists every RecordStatus.
var RecordStatuses = []RecordStatus{RecordStatusActive, RecordStatusInactive}

// Valid reports whether s is active or inactive.
func (s RecordStatus) Valid() bool {
	return s == RecordStatusActive || s == RecordStatusInactive
}

// Department is the organizational unit complaints are routed to.
type Department struct {
	Code   string
	Name   string
	Status RecordStatus
}
