package model

import (
	"encoding/json"
	"time"
)

// ReviewDecision is the closed set of verdicts a reviewer can hand down.
type ReviewDecision string

const (
	DecisionApprove         ReviewDecision = "approve"
	DecisionReject          ReviewDecision = "reject"
	DecisionRequestRevision ReviewDecision = "request_revision"
)

func (d ReviewDecision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionRequestRevision:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "pending"
	ApprovalApproved      ApprovalStatus = "approved"
	ApprovalRejected      ApprovalStatus = "rejected"
	ApprovalNeedsRevision ApprovalStatus = "needs_revision"
)

// RecordStatus maps a reviewer decision onto the approval record status it
// produces.
func (d ReviewDecision) RecordStatus() ApprovalStatus {
	switch d {
	case DecisionApprove:
		return ApprovalApproved
	case DecisionReject:
		return ApprovalRejected
	case DecisionRequestRevision:
		return ApprovalNeedsRevision
	}
	return ApprovalPending
}

// ApprovalRecord tracks one reviewer's judgment on one course at one level.
// A record is immutable once ReviewedAt is set; the next level gets a new
// record instead of reusing this one.
//
// swagger:model ApprovalRecord
type ApprovalRecord struct {
	UUIDBase
	CourseID   uint `gorm:"not null;uniqueIndex:idx_course_cycle_level" json:"courseId"`
	Cycle      int  `gorm:"not null;default:1;uniqueIndex:idx_course_cycle_level" json:"cycle"`
	Level      int  `gorm:"not null;uniqueIndex:idx_course_cycle_level" json:"level"`
	ReviewerID uint `gorm:"index;not null" json:"reviewerId"`

	Status   ApprovalStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	IsActive bool           `gorm:"default:true;index" json:"isActive"`

	ContentScore    *int `json:"contentScore,omitempty"`
	AcademicRigor   *int `json:"academicRigor,omitempty"`
	ResourceScore   *int `json:"resourceScore,omitempty"`
	InnovationScore *int `json:"innovationScore,omitempty"`
	OverallScore    *int `json:"overallScore,omitempty"`

	Comments         string          `gorm:"type:text" json:"comments"`
	RequiredChanges  json.RawMessage `gorm:"type:json" json:"requiredChanges,omitempty"`
	SuggestedChanges json.RawMessage `gorm:"type:json" json:"suggestedChanges,omitempty"`
	RevisionDeadline *time.Time      `json:"revisionDeadline,omitempty"`

	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

func (ApprovalRecord) TableName() string {
	return "approval_records"
}

// Decided reports whether the record already carries a final verdict.
func (r *ApprovalRecord) Decided() bool {
	return r.ReviewedAt != nil || r.Status != ApprovalPending
}
