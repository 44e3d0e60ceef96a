package model

type CourseStatus string

const (
	CourseDraft         CourseStatus = "draft"
	CourseUnderReview   CourseStatus = "under_review"
	CourseNeedsRevision CourseStatus = "needs_revision"
	CourseApproved      CourseStatus = "approved"
	CourseRejected      CourseStatus = "rejected"
)

// Editable reports whether the instructor may still change course content.
// Once a course is under review or approved, only the approval workflow
// mutates it.
func (s CourseStatus) Editable() bool {
	switch s {
	case CourseDraft, CourseRejected, CourseNeedsRevision:
		return true
	}
	return false
}

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	InstructorID  uint `gorm:"index;not null" json:"instructorId"`
	FacultyID     uint `gorm:"index;not null" json:"facultyId"`
	SchoolID      uint `gorm:"index;not null" json:"schoolId"`
	InstitutionID uint `gorm:"index;not null" json:"institutionId"`

	Status CourseStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`

	// CurrentApprovalLevel is the level of the single active approval
	// record, or 0 when no review is in flight.
	CurrentApprovalLevel int `gorm:"default:0" json:"currentApprovalLevel"`

	// ReviewCycle counts submissions. A rejected or revised course that is
	// resubmitted starts a fresh cycle, so (course, cycle, level) stays
	// unique without touching the immutable records of earlier cycles.
	ReviewCycle int `gorm:"default:0" json:"reviewCycle"`

	// Last terminal-decision free text, overwritten on each new terminal
	// decision.
	RejectionReason string `gorm:"type:text" json:"rejectionReason,omitempty"`
	RevisionNotes   string `gorm:"type:text" json:"revisionNotes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
