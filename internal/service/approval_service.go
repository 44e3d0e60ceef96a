package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"unicourse_backend/internal/config"
	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
	"unicourse_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier delivers a human-visible message. Delivery is best effort and
// runs after the workflow transaction commits; a failed delivery never
// rolls back a decision.
type Notifier interface {
	Notify(n *model.Notification)
}

// Auditor records a compliance-visible snapshot of a completed workflow
// operation, also post-commit and best effort.
type Auditor interface {
	Record(entry *model.AuditLog)
}

// ApprovalService is the course approval state machine. It owns every
// mutation of Course.Status, CurrentApprovalLevel and the approval history;
// nothing else in the system writes those fields.
type ApprovalService struct {
	DB        *gorm.DB
	Courses   *repository.CourseRepository
	Approvals *repository.ApprovalRepository
	Members   MembershipFinder
	Notifier  Notifier
	Auditor   Auditor
	Redis     *redis.Client
	Cfg       config.ApprovalConfig
}

func NewApprovalService(
	courseRepo *repository.CourseRepository,
	approvalRepo *repository.ApprovalRepository,
	members MembershipFinder,
	notifier Notifier,
	auditor Auditor,
	cfg config.ApprovalConfig,
	db *gorm.DB,
	rdb *redis.Client,
) *ApprovalService {
	return &ApprovalService{
		DB:        db,
		Courses:   courseRepo,
		Approvals: approvalRepo,
		Members:   members,
		Notifier:  notifier,
		Auditor:   auditor,
		Redis:     rdb,
		Cfg:       cfg,
	}
}

type DecisionRequest struct {
	Decision         model.ReviewDecision `json:"decision" binding:"required"`
	Comments         string               `json:"comments"`
	ContentScore     *int                 `json:"contentScore"`
	AcademicRigor    *int                 `json:"academicRigor"`
	ResourceScore    *int                 `json:"resourceScore"`
	InnovationScore  *int                 `json:"innovationScore"`
	RequiredChanges  []string             `json:"requiredChanges"`
	SuggestedChanges []string             `json:"suggestedChanges"`
	RevisionDeadline *time.Time           `json:"revisionDeadline"`
}

// DecisionResult is what both workflow entry points hand back: the course
// as it stands after the operation and the approval record it touched or
// created.
type DecisionResult struct {
	Course   *model.Course         `json:"course"`
	Approval *model.ApprovalRecord `json:"approval"`
}

func (s *ApprovalService) validateScores(req *DecisionRequest) error {
	for name, score := range map[string]*int{
		"contentScore":    req.ContentScore,
		"academicRigor":   req.AcademicRigor,
		"resourceScore":   req.ResourceScore,
		"innovationScore": req.InnovationScore,
	} {
		if !ScoreInBounds(score, s.Cfg.MinScore, s.Cfg.MaxScore) {
			return util.ValidationError("%s %d is outside the allowed range [%d, %d]",
				name, *score, s.Cfg.MinScore, s.Cfg.MaxScore)
		}
	}
	return nil
}

// Decide applies one reviewer verdict to the active approval record and
// advances the course state machine. All store mutations happen in a
// single transaction; a failure anywhere leaves every row untouched.
func (s *ApprovalService) Decide(recordID string, reviewerID uint, req DecisionRequest) (*DecisionResult, error) {
	if !req.Decision.Valid() {
		return nil, util.ValidationError("unknown decision %q", string(req.Decision))
	}
	if err := s.validateScores(&req); err != nil {
		return nil, err
	}

	var (
		course       model.Course
		record       model.ApprovalRecord
		nextReviewer uint
	)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Row-locked read so two concurrent decisions on the same record
		// serialize; the loser observes a non-pending status below. The
		// sqlite dialect used by the tests has no FOR UPDATE and serializes
		// writers on its own.
		query := tx
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := query.First(&record, "id = ?", recordID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("approval record %s not found", recordID)
		}
		if err != nil {
			return util.InternalError(err)
		}

		if record.ReviewerID != reviewerID {
			return util.PermissionError("user %d is not the reviewer for this approval", reviewerID)
		}
		if record.Decided() {
			return util.ConflictError("approval record %s has already been decided", recordID)
		}

		if err := tx.First(&course, record.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("course %d not found", record.CourseID)
			}
			return util.InternalError(err)
		}

		overall := AggregateScores(req.ContentScore, req.AcademicRigor, req.ResourceScore, req.InnovationScore)
		now := time.Now()

		record.Status = req.Decision.RecordStatus()
		record.IsActive = false
		record.ReviewedAt = &now
		record.Comments = req.Comments
		record.ContentScore = req.ContentScore
		record.AcademicRigor = req.AcademicRigor
		record.ResourceScore = req.ResourceScore
		record.InnovationScore = req.InnovationScore
		record.OverallScore = overall
		if req.RequiredChanges != nil {
			record.RequiredChanges, _ = json.Marshal(req.RequiredChanges)
		}
		if req.SuggestedChanges != nil {
			record.SuggestedChanges, _ = json.Marshal(req.SuggestedChanges)
		}
		record.RevisionDeadline = req.RevisionDeadline
		if err := tx.Save(&record).Error; err != nil {
			return util.InternalError(err)
		}

		history := model.ApprovalHistory{
			CourseID:     course.ID,
			Action:       historyAction(req.Decision),
			ActorID:      reviewerID,
			Level:        record.Level,
			Comments:     req.Comments,
			OverallScore: overall,
		}
		if err := tx.Create(&history).Error; err != nil {
			return util.InternalError(err)
		}

		switch req.Decision {
		case model.DecisionApprove:
			next := record.Level + 1
			if next > s.Cfg.MaxLevel {
				s.finalizeApproved(&course)
				break
			}

			// The lookup rides the transaction so it shares its connection
			// and snapshot.
			nextID, err := NewApproverResolver(repository.NewMembershipRepository(tx)).
				Resolve(next, course.InstitutionID, course.SchoolID)
			if err != nil {
				return util.InternalError(err)
			}
			if nextID == 0 {
				if !s.Cfg.AutoApproveMissingReviewer {
					return util.NotFoundError("no eligible reviewer for level %d", next)
				}
				// Legacy fallback: approve outright when the chain has no
				// reviewer at the next level.
				s.finalizeApproved(&course)
				break
			}

			nr := model.ApprovalRecord{
				CourseID:    course.ID,
				Cycle:       record.Cycle,
				Level:       next,
				ReviewerID:  nextID,
				Status:      model.ApprovalPending,
				IsActive:    true,
				SubmittedAt: now,
			}
			if err := tx.Create(&nr).Error; err != nil {
				return util.InternalError(err)
			}
			nextReviewer = nextID
			course.Status = model.CourseUnderReview
			course.CurrentApprovalLevel = next

		case model.DecisionReject:
			course.Status = model.CourseRejected
			course.CurrentApprovalLevel = 0
			course.RejectionReason = req.Comments

		case model.DecisionRequestRevision:
			course.Status = model.CourseNeedsRevision
			course.CurrentApprovalLevel = 0
			course.RevisionNotes = req.Comments
		}

		if err := tx.Save(&course).Error; err != nil {
			return util.InternalError(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyDecision(&course, &record, nextReviewer, req.Decision)
	s.audit("course_approval.decide", &course, &record, reviewerID, req.Comments)

	return &DecisionResult{Course: &course, Approval: &record}, nil
}

// SubmitForApproval moves an editable course into review: it creates the
// level-1 approval record and hands it to the institution's first-line
// reviewer.
func (s *ApprovalService) SubmitForApproval(courseID, submitterID uint) (*DecisionResult, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course %d not found", courseID)
		}
		return nil, util.InternalError(err)
	}

	if course.InstructorID != submitterID {
		return nil, util.PermissionError("only the course instructor can submit for approval")
	}

	facultyID := course.FacultyID
	isFaculty, err := s.Members.HasActiveRole(submitterID, course.InstitutionID, model.MemberRoleFacultyMember, &facultyID)
	if err != nil {
		return nil, util.InternalError(err)
	}
	if !isFaculty {
		return nil, util.PermissionError("submitter holds no active faculty membership for this course")
	}

	reviewerID, err := s.Members.FindFirstLineReviewer(course.InstitutionID)
	if err != nil {
		return nil, util.InternalError(err)
	}
	if reviewerID == 0 {
		return nil, util.NotFoundError("no eligible first-line reviewer in institution %d", course.InstitutionID)
	}

	var record model.ApprovalRecord
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Re-read the course under the transaction so a concurrent submit
		// is observed here, as a conflict, instead of surfacing as a
		// unique-index violation on the record insert.
		query := tx
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(course, courseID).Error; err != nil {
			return util.InternalError(err)
		}

		if !course.Status.Editable() {
			return util.ConflictError("course in status %q cannot be submitted for approval", string(course.Status))
		}

		var active int64
		if err := tx.Model(&model.ApprovalRecord{}).
			Where("course_id = ? AND is_active = ?", course.ID, true).
			Count(&active).Error; err != nil {
			return util.InternalError(err)
		}
		if active > 0 {
			return util.ConflictError("course already has a pending approval")
		}

		course.ReviewCycle++
		record = model.ApprovalRecord{
			CourseID:    course.ID,
			Cycle:       course.ReviewCycle,
			Level:       1,
			ReviewerID:  reviewerID,
			Status:      model.ApprovalPending,
			IsActive:    true,
			SubmittedAt: time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return util.InternalError(err)
		}

		course.Status = model.CourseUnderReview
		course.CurrentApprovalLevel = 1
		if err := tx.Save(course).Error; err != nil {
			return util.InternalError(err)
		}

		history := model.ApprovalHistory{
			CourseID: course.ID,
			Action:   model.HistorySubmitted,
			ActorID:  submitterID,
			Level:    1,
		}
		return tx.Create(&history).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Notifier.Notify(&model.Notification{
		RecipientID: reviewerID,
		IssuerID:    submitterID,
		Type:        model.NotifyReviewRequested,
		Title:       "Course submitted for review",
		Message:     fmt.Sprintf("%q is awaiting your level 1 review", course.Title),
		CourseID:    course.ID,
	})
	s.audit("course_approval.submit", course, &record, submitterID, "")

	return &DecisionResult{Course: course, Approval: &record}, nil
}

// GetApproval fetches one approval record, restricted to its reviewer and
// the course instructor.
func (s *ApprovalService) GetApproval(recordID string, userID uint) (*model.ApprovalRecord, error) {
	record, err := s.Approvals.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("approval record %s not found", recordID)
		}
		return nil, util.InternalError(err)
	}

	if record.ReviewerID != userID {
		course, err := s.Courses.FindByID(record.CourseID)
		if err != nil || course.InstructorID != userID {
			return nil, util.PermissionError("approval record is not visible to user %d", userID)
		}
	}
	return record, nil
}

func (s *ApprovalService) ListPending(reviewerID uint, page, limit int) ([]model.ApprovalRecord, int64, error) {
	return s.Approvals.ListPendingByReviewer(reviewerID, page, limit)
}

// PendingCount returns the reviewer's queue depth, cached in redis for a
// minute so dashboard widgets do not hammer the store.
func (s *ApprovalService) PendingCount(reviewerID uint) (int64, error) {
	key := fmt.Sprintf("approvals:pending:%d", reviewerID)

	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if val, err := s.Redis.Get(ctx, key).Int64(); err == nil {
			return val, nil
		}
	}

	count, err := s.Approvals.CountPendingByReviewer(reviewerID)
	if err != nil {
		return 0, util.InternalError(err)
	}

	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Redis.Set(ctx, key, count, time.Minute)
	}
	return count, nil
}

func (s *ApprovalService) History(courseID uint) ([]model.ApprovalHistory, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course %d not found", courseID)
		}
		return nil, util.InternalError(err)
	}
	return s.Courses.ListHistory(courseID)
}

func (s *ApprovalService) finalizeApproved(course *model.Course) {
	course.Status = model.CourseApproved
	course.CurrentApprovalLevel = 0
}

func historyAction(d model.ReviewDecision) model.HistoryAction {
	switch d {
	case model.DecisionApprove:
		return model.HistoryApproved
	case model.DecisionReject:
		return model.HistoryRejected
	default:
		return model.HistoryRevisionRequested
	}
}

func (s *ApprovalService) notifyDecision(course *model.Course, record *model.ApprovalRecord, nextReviewer uint, decision model.ReviewDecision) {
	switch {
	case nextReviewer != 0:
		s.Notifier.Notify(&model.Notification{
			RecipientID: nextReviewer,
			IssuerID:    record.ReviewerID,
			Type:        model.NotifyReviewRequested,
			Title:       "Course awaiting your review",
			Message:     fmt.Sprintf("%q passed level %d and awaits your level %d review", course.Title, record.Level, course.CurrentApprovalLevel),
			CourseID:    course.ID,
		})
	case decision == model.DecisionApprove:
		s.Notifier.Notify(&model.Notification{
			RecipientID: course.InstructorID,
			IssuerID:    record.ReviewerID,
			Type:        model.NotifyCourseApproved,
			Title:       "Course approved",
			Message:     fmt.Sprintf("%q has been approved for publication", course.Title),
			CourseID:    course.ID,
		})
	case decision == model.DecisionReject:
		s.Notifier.Notify(&model.Notification{
			RecipientID: course.InstructorID,
			IssuerID:    record.ReviewerID,
			Type:        model.NotifyCourseRejected,
			Title:       "Course rejected",
			Message:     fmt.Sprintf("%q was rejected: %s", course.Title, course.RejectionReason),
			CourseID:    course.ID,
		})
	default:
		s.Notifier.Notify(&model.Notification{
			RecipientID: course.InstructorID,
			IssuerID:    record.ReviewerID,
			Type:        model.NotifyRevisionNeeded,
			Title:       "Course needs revision",
			Message:     fmt.Sprintf("%q needs changes before review can continue: %s", course.Title, course.RevisionNotes),
			CourseID:    course.ID,
		})
	}
}

func (s *ApprovalService) audit(action string, course *model.Course, record *model.ApprovalRecord, actorID uint, note string) {
	after, _ := json.Marshal(map[string]interface{}{
		"courseStatus":  course.Status,
		"approvalLevel": course.CurrentApprovalLevel,
		"recordStatus":  record.Status,
	})
	meta, _ := json.Marshal(map[string]interface{}{
		"courseId": course.ID,
		"level":    record.Level,
		"cycle":    record.Cycle,
	})
	s.Auditor.Record(&model.AuditLog{
		Action:     action,
		EntityType: "approval_record",
		EntityID:   record.ID,
		ActorID:    actorID,
		After:      after,
		Note:       note,
		Metadata:   meta,
	})
}
