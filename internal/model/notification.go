package model

type NotificationType string

const (
	NotifyReviewRequested NotificationType = "review_requested"
	NotifyCourseApproved  NotificationType = "course_approved"
	NotifyCourseRejected  NotificationType = "course_rejected"
	NotifyRevisionNeeded  NotificationType = "revision_needed"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	RecipientID uint             `gorm:"index;not null" json:"recipientId"`
	IssuerID    uint             `gorm:"index" json:"issuerId"`
	Type        NotificationType `gorm:"size:32;not null" json:"type"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Message     string           `gorm:"type:text" json:"message"`
	CourseID    uint             `gorm:"index" json:"courseId"`
	IsRead      bool             `gorm:"default:false;index" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
