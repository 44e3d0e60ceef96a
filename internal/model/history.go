package model

type HistoryAction string

const (
	HistorySubmitted         HistoryAction = "submitted"
	HistoryApproved          HistoryAction = "approved"
	HistoryRejected          HistoryAction = "rejected"
	HistoryRevisionRequested HistoryAction = "revision_requested"
)

// ApprovalHistory is the append-only audit trail of a course's review
// lifecycle. Rows are only ever inserted, inside the same transaction as
// the state change they describe; ordering follows the auto-increment ID.
type ApprovalHistory struct {
	BaseModel
	CourseID     uint          `gorm:"index;not null" json:"courseId"`
	Action       HistoryAction `gorm:"size:32;not null" json:"action"`
	ActorID      uint          `gorm:"not null" json:"actorId"`
	Level        int           `gorm:"not null" json:"level"`
	Comments     string        `gorm:"type:text" json:"comments"`
	OverallScore *int          `json:"overallScore,omitempty"`
}

func (ApprovalHistory) TableName() string {
	return "approval_histories"
}
