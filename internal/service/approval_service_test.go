package service

import (
	"testing"

	"unicourse_backend/internal/config"
	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
	"unicourse_backend/internal/util"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	instructorID  = uint(10)
	firstLineID   = uint(100) // institution admin, first-pass and level-3 reviewer
	schoolAdminID = uint(200)
)

type capturingNotifier struct {
	sent []*model.Notification
}

func (n *capturingNotifier) Notify(v *model.Notification) {
	n.sent = append(n.sent, v)
}

func (n *capturingNotifier) last() *model.Notification {
	if len(n.sent) == 0 {
		return nil
	}
	return n.sent[len(n.sent)-1]
}

type capturingAuditor struct {
	entries []*model.AuditLog
}

func (a *capturingAuditor) Record(e *model.AuditLog) {
	a.entries = append(a.entries, e)
}

type fixture struct {
	t        *testing.T
	db       *gorm.DB
	svc      *ApprovalService
	notifier *capturingNotifier
	auditor  *capturingAuditor
	course   *model.Course
}

func defaultApprovalConfig() config.ApprovalConfig {
	return config.ApprovalConfig{MaxLevel: 3, MinScore: 0, MaxScore: 100}
}

func newFixture(t *testing.T, cfg config.ApprovalConfig) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Institution{},
		&model.School{},
		&model.Faculty{},
		&model.Membership{},
		&model.Course{},
		&model.ApprovalRecord{},
		&model.ApprovalHistory{},
		&model.Notification{},
		&model.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	inst := model.Institution{Name: "Test University", Code: "TU", IsActive: true}
	if err := db.Create(&inst).Error; err != nil {
		t.Fatalf("seed institution: %v", err)
	}
	school := model.School{InstitutionID: inst.ID, Name: "Engineering", IsActive: true}
	if err := db.Create(&school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	faculty := model.Faculty{SchoolID: school.ID, InstitutionID: inst.ID, Name: "Computer Science", IsActive: true}
	if err := db.Create(&faculty).Error; err != nil {
		t.Fatalf("seed faculty: %v", err)
	}

	memberships := []model.Membership{
		{UserID: instructorID, InstitutionID: inst.ID, Role: model.MemberRoleFacultyMember, SchoolID: &school.ID, FacultyID: &faculty.ID, IsActive: true},
		{UserID: firstLineID, InstitutionID: inst.ID, Role: model.MemberRoleAdmin, IsActive: true},
		{UserID: schoolAdminID, InstitutionID: inst.ID, Role: model.MemberRoleSchoolAdmin, SchoolID: &school.ID, IsActive: true},
	}
	for i := range memberships {
		if err := db.Create(&memberships[i]).Error; err != nil {
			t.Fatalf("seed membership: %v", err)
		}
	}

	course := model.Course{
		Title:         "Algorithms 101",
		InstructorID:  instructorID,
		FacultyID:     faculty.ID,
		SchoolID:      school.ID,
		InstitutionID: inst.ID,
		Status:        model.CourseDraft,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	notifier := &capturingNotifier{}
	auditor := &capturingAuditor{}
	svc := NewApprovalService(
		repository.NewCourseRepository(db),
		repository.NewApprovalRepository(db),
		repository.NewMembershipRepository(db),
		notifier,
		auditor,
		cfg,
		db,
		nil,
	)

	return &fixture{t: t, db: db, svc: svc, notifier: notifier, auditor: auditor, course: &course}
}

func (f *fixture) removeMemberships(roles ...model.MemberRole) {
	f.t.Helper()
	if err := f.db.Where("role IN ?", roles).Delete(&model.Membership{}).Error; err != nil {
		f.t.Fatalf("remove memberships: %v", err)
	}
}

func (f *fixture) reloadCourse() *model.Course {
	f.t.Helper()
	var course model.Course
	if err := f.db.First(&course, f.course.ID).Error; err != nil {
		f.t.Fatalf("reload course: %v", err)
	}
	return &course
}

func (f *fixture) reloadRecord(id string) *model.ApprovalRecord {
	f.t.Helper()
	var record model.ApprovalRecord
	if err := f.db.First(&record, "id = ?", id).Error; err != nil {
		f.t.Fatalf("reload record: %v", err)
	}
	return &record
}

func (f *fixture) historyLen() int {
	f.t.Helper()
	var count int64
	if err := f.db.Model(&model.ApprovalHistory{}).Where("course_id = ?", f.course.ID).Count(&count).Error; err != nil {
		f.t.Fatalf("count history: %v", err)
	}
	return int(count)
}

func (f *fixture) recordCount() int {
	f.t.Helper()
	var count int64
	if err := f.db.Model(&model.ApprovalRecord{}).Where("course_id = ?", f.course.ID).Count(&count).Error; err != nil {
		f.t.Fatalf("count records: %v", err)
	}
	return int(count)
}

func (f *fixture) submit() *DecisionResult {
	f.t.Helper()
	result, err := f.svc.SubmitForApproval(f.course.ID, instructorID)
	if err != nil {
		f.t.Fatalf("SubmitForApproval: %v", err)
	}
	return result
}

func wantKind(t *testing.T, err error, kind util.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", kind)
	}
	if got := util.KindOf(err); got != kind {
		t.Fatalf("error kind = %s, want %s (err: %v)", got, kind, err)
	}
}

func TestSubmitForApprovalCreatesLevelOneRecord(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())

	result := f.submit()

	if result.Approval.Level != 1 {
		t.Errorf("approval level = %d, want 1", result.Approval.Level)
	}
	if result.Approval.Status != model.ApprovalPending || !result.Approval.IsActive {
		t.Errorf("approval must start pending and active, got %s/%v", result.Approval.Status, result.Approval.IsActive)
	}
	if result.Approval.ReviewerID != firstLineID {
		t.Errorf("level-1 reviewer = %d, want the institution admin %d", result.Approval.ReviewerID, firstLineID)
	}
	if result.Approval.Cycle != 1 {
		t.Errorf("first submission cycle = %d, want 1", result.Approval.Cycle)
	}

	course := f.reloadCourse()
	if course.Status != model.CourseUnderReview {
		t.Errorf("course status = %s, want under_review", course.Status)
	}
	if course.CurrentApprovalLevel != 1 {
		t.Errorf("current approval level = %d, want 1", course.CurrentApprovalLevel)
	}

	if n := f.historyLen(); n != 1 {
		t.Errorf("history length = %d, want 1", n)
	}

	last := f.notifier.last()
	if last == nil || last.Type != model.NotifyReviewRequested || last.RecipientID != firstLineID {
		t.Errorf("reviewer was not notified: %+v", last)
	}
	if len(f.auditor.entries) != 1 || f.auditor.entries[0].Action != "course_approval.submit" {
		t.Errorf("expected one submit audit entry, got %+v", f.auditor.entries)
	}
}

func TestSubmitForApprovalRequiresInstructor(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())

	_, err := f.svc.SubmitForApproval(f.course.ID, schoolAdminID)
	wantKind(t, err, util.KindPermission)

	if f.recordCount() != 0 || f.historyLen() != 0 {
		t.Error("failed submission must not create records or history")
	}
}

func TestSubmitForApprovalRequiresFacultyMembership(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.removeMemberships(model.MemberRoleFacultyMember)

	_, err := f.svc.SubmitForApproval(f.course.ID, instructorID)
	wantKind(t, err, util.KindPermission)
}

func TestSubmitForApprovalRejectsNonEditableStatus(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.submit()

	// Under review now; a second submission must conflict.
	_, err := f.svc.SubmitForApproval(f.course.ID, instructorID)
	wantKind(t, err, util.KindConflict)
}

func TestSubmitForApprovalConflictsOnActiveRecord(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.submit()

	// Force the status back without touching the live record: the active
	// record check inside the transaction must still refuse, and nothing
	// new may be created.
	if err := f.db.Model(&model.Course{}).Where("id = ?", f.course.ID).
		Update("status", model.CourseDraft).Error; err != nil {
		t.Fatalf("force status: %v", err)
	}

	_, err := f.svc.SubmitForApproval(f.course.ID, instructorID)
	wantKind(t, err, util.KindConflict)

	if f.recordCount() != 1 {
		t.Errorf("record count = %d, want the original 1", f.recordCount())
	}
	if f.historyLen() != 1 {
		t.Errorf("history length = %d, want the original 1", f.historyLen())
	}
}

func TestSubmitForApprovalFailsWithoutReviewer(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.removeMemberships(model.MemberRoleAdmin, model.MemberRoleOwner)

	_, err := f.svc.SubmitForApproval(f.course.ID, instructorID)
	wantKind(t, err, util.KindNotFound)

	if f.recordCount() != 0 {
		t.Error("no approval record may exist when no reviewer was found")
	}
}

func TestDecideApproveAdvancesToNextLevel(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	result, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision:      model.DecisionApprove,
		Comments:      "solid foundation",
		ContentScore:  intPtr(80),
		AcademicRigor: intPtr(85),
		ResourceScore: intPtr(90),
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if result.Approval.Status != model.ApprovalApproved {
		t.Errorf("record status = %s, want approved", result.Approval.Status)
	}
	if result.Approval.OverallScore == nil || *result.Approval.OverallScore != 85 {
		t.Errorf("overall score = %v, want 85", result.Approval.OverallScore)
	}
	if result.Approval.ReviewedAt == nil {
		t.Error("reviewedAt must be stamped on decision")
	}
	if result.Approval.IsActive {
		t.Error("decided record must no longer be active")
	}

	course := f.reloadCourse()
	if course.Status != model.CourseUnderReview || course.CurrentApprovalLevel != 2 {
		t.Errorf("course = %s/level %d, want under_review/level 2", course.Status, course.CurrentApprovalLevel)
	}

	var next model.ApprovalRecord
	if err := f.db.Where("course_id = ? AND level = 2", f.course.ID).First(&next).Error; err != nil {
		t.Fatalf("level-2 record missing: %v", err)
	}
	if next.Status != model.ApprovalPending || !next.IsActive {
		t.Errorf("level-2 record must be pending and active, got %s/%v", next.Status, next.IsActive)
	}
	if next.ReviewerID != schoolAdminID {
		t.Errorf("level-2 reviewer = %d, want school admin %d", next.ReviewerID, schoolAdminID)
	}

	if n := f.historyLen(); n != 2 {
		t.Errorf("history length = %d, want 2", n)
	}

	last := f.notifier.last()
	if last == nil || last.Type != model.NotifyReviewRequested || last.RecipientID != schoolAdminID {
		t.Errorf("next reviewer was not notified: %+v", last)
	}
}

// The next-reviewer lookup runs inside the decision transaction, on the
// same connection. The fixture pins the store to a single connection, so
// a lookup that strayed onto another one would block this test forever.
func TestDecideResolvesReviewerAddedAfterSubmission(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.removeMemberships(model.MemberRoleSchoolAdmin)
	submitted := f.submit()

	newAdminID := uint(300)
	schoolID := f.course.SchoolID
	m := model.Membership{
		UserID:        newAdminID,
		InstitutionID: f.course.InstitutionID,
		Role:          model.MemberRoleSchoolAdmin,
		SchoolID:      &schoolID,
		IsActive:      true,
	}
	if err := f.db.Create(&m).Error; err != nil {
		t.Fatalf("seed late membership: %v", err)
	}

	if _, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	var next model.ApprovalRecord
	if err := f.db.Where("course_id = ? AND level = 2", f.course.ID).First(&next).Error; err != nil {
		t.Fatalf("level-2 record missing: %v", err)
	}
	if next.ReviewerID != newAdminID {
		t.Errorf("level-2 reviewer = %d, want the newly added school admin %d", next.ReviewerID, newAdminID)
	}
}

func TestDecideTerminalApprovalAtMaxLevel(t *testing.T) {
	cfg := defaultApprovalConfig()
	cfg.MaxLevel = 1
	f := newFixture(t, cfg)
	submitted := f.submit()

	result, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if result.Course.Status != model.CourseApproved {
		t.Errorf("course status = %s, want approved", result.Course.Status)
	}
	if result.Course.CurrentApprovalLevel != 0 {
		t.Errorf("current approval level = %d, want 0", result.Course.CurrentApprovalLevel)
	}
	if f.recordCount() != 1 {
		t.Error("terminal approval must not create another record")
	}

	last := f.notifier.last()
	if last == nil || last.Type != model.NotifyCourseApproved || last.RecipientID != instructorID {
		t.Errorf("instructor was not notified of final approval: %+v", last)
	}
}

func TestDecideRejectShortCircuits(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	result, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionReject,
		Comments: "insufficient rigor",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if result.Course.Status != model.CourseRejected || result.Course.CurrentApprovalLevel != 0 {
		t.Errorf("course = %s/level %d, want rejected/level 0", result.Course.Status, result.Course.CurrentApprovalLevel)
	}
	if result.Course.RejectionReason != "insufficient rigor" {
		t.Errorf("rejection reason = %q", result.Course.RejectionReason)
	}
	if f.recordCount() != 1 {
		t.Error("rejection must not create another record")
	}

	last := f.notifier.last()
	if last == nil || last.Type != model.NotifyCourseRejected || last.RecipientID != instructorID {
		t.Errorf("instructor was not notified of rejection: %+v", last)
	}
}

func TestDecideRequestRevision(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	result, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionRequestRevision,
		Comments: "add assessment rubrics",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if result.Course.Status != model.CourseNeedsRevision || result.Course.CurrentApprovalLevel != 0 {
		t.Errorf("course = %s/level %d, want needs_revision/level 0", result.Course.Status, result.Course.CurrentApprovalLevel)
	}
	if result.Course.RevisionNotes != "add assessment rubrics" {
		t.Errorf("revision notes = %q", result.Course.RevisionNotes)
	}
	if result.Approval.Status != model.ApprovalNeedsRevision {
		t.Errorf("record status = %s, want needs_revision", result.Approval.Status)
	}
}

func TestDecideSecondDecisionConflicts(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	first, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	if err != nil {
		t.Fatalf("first Decide: %v", err)
	}

	courseAfterFirst := f.reloadCourse()
	historyAfterFirst := f.historyLen()

	_, err = f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionReject,
		Comments: "changed my mind",
	})
	wantKind(t, err, util.KindConflict)

	record := f.reloadRecord(submitted.Approval.ID)
	if record.Status != model.ApprovalApproved {
		t.Errorf("record status flipped to %s after conflicting decision", record.Status)
	}
	if record.ReviewedAt == nil || !record.ReviewedAt.Equal(*first.Approval.ReviewedAt) {
		t.Error("reviewedAt changed on a conflicting decision")
	}

	course := f.reloadCourse()
	if course.Status != courseAfterFirst.Status || course.CurrentApprovalLevel != courseAfterFirst.CurrentApprovalLevel {
		t.Error("course state changed on a conflicting decision")
	}
	if f.historyLen() != historyAfterFirst {
		t.Error("history grew on a conflicting decision")
	}
}

func TestDecideWrongReviewerForbidden(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	_, err := f.svc.Decide(submitted.Approval.ID, instructorID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	wantKind(t, err, util.KindPermission)

	record := f.reloadRecord(submitted.Approval.ID)
	if record.ReviewedAt != nil || record.Status != model.ApprovalPending {
		t.Error("unauthorized decision must leave the record untouched")
	}
	course := f.reloadCourse()
	if course.Status != model.CourseUnderReview || course.CurrentApprovalLevel != 1 {
		t.Error("unauthorized decision must leave the course untouched")
	}
	if f.historyLen() != 1 {
		t.Error("unauthorized decision must not append history")
	}
}

func TestDecideScoreOutOfRange(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	_, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision:      model.DecisionApprove,
		ContentScore:  intPtr(101),
		AcademicRigor: intPtr(80),
		ResourceScore: intPtr(80),
	})
	wantKind(t, err, util.KindValidation)

	record := f.reloadRecord(submitted.Approval.ID)
	if record.Status != model.ApprovalPending {
		t.Error("invalid scores must be rejected before any mutation")
	}
}

func TestDecideUnknownDecision(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	_, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.ReviewDecision("publish"),
	})
	wantKind(t, err, util.KindValidation)
}

func TestDecideMissingRecordNotFound(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.submit()

	_, err := f.svc.Decide("no-such-record", firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	wantKind(t, err, util.KindNotFound)
}

func TestDecideMissingNextReviewerFailsByDefault(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()
	f.removeMemberships(model.MemberRoleSchoolAdmin)

	_, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	wantKind(t, err, util.KindNotFound)

	// The whole transaction must roll back: record still live, course
	// still waiting at level 1.
	record := f.reloadRecord(submitted.Approval.ID)
	if record.Status != model.ApprovalPending || !record.IsActive || record.ReviewedAt != nil {
		t.Errorf("record must stay pending after rollback, got %s/%v", record.Status, record.IsActive)
	}
	course := f.reloadCourse()
	if course.Status != model.CourseUnderReview || course.CurrentApprovalLevel != 1 {
		t.Errorf("course = %s/level %d, want under_review/level 1", course.Status, course.CurrentApprovalLevel)
	}
	if f.historyLen() != 1 {
		t.Error("rolled-back decision must not append history")
	}
}

func TestDecideMissingNextReviewerLegacyAutoApproves(t *testing.T) {
	cfg := defaultApprovalConfig()
	cfg.AutoApproveMissingReviewer = true
	f := newFixture(t, cfg)
	submitted := f.submit()
	f.removeMemberships(model.MemberRoleSchoolAdmin)

	result, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionApprove,
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if result.Course.Status != model.CourseApproved || result.Course.CurrentApprovalLevel != 0 {
		t.Errorf("legacy fallback must approve outright, got %s/level %d", result.Course.Status, result.Course.CurrentApprovalLevel)
	}
	if f.recordCount() != 1 {
		t.Error("legacy fallback must not create a level-2 record")
	}
}

func TestResubmissionStartsNewCycle(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	if _, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision: model.DecisionReject,
		Comments: "not yet",
	}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	second := f.submit()
	if second.Approval.Cycle != 2 || second.Approval.Level != 1 {
		t.Errorf("resubmission = cycle %d/level %d, want cycle 2/level 1", second.Approval.Cycle, second.Approval.Level)
	}
	if f.recordCount() != 2 {
		t.Errorf("expected the rejected and the fresh record, got %d", f.recordCount())
	}
}

// Full walk of the review chain: submit, level-1 approval with scores, then
// a level-2 rejection.
func TestReviewChainScenario(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	first, err := f.svc.Decide(submitted.Approval.ID, firstLineID, DecisionRequest{
		Decision:      model.DecisionApprove,
		ContentScore:  intPtr(80),
		AcademicRigor: intPtr(85),
		ResourceScore: intPtr(90),
	})
	if err != nil {
		t.Fatalf("level-1 Decide: %v", err)
	}
	if *first.Approval.OverallScore != 85 {
		t.Errorf("level-1 overall = %d, want 85", *first.Approval.OverallScore)
	}
	if n := f.historyLen(); n != 2 {
		t.Errorf("history after submit+approve = %d, want 2", n)
	}

	var level2 model.ApprovalRecord
	if err := f.db.Where("course_id = ? AND level = 2", f.course.ID).First(&level2).Error; err != nil {
		t.Fatalf("level-2 record missing: %v", err)
	}

	second, err := f.svc.Decide(level2.ID, schoolAdminID, DecisionRequest{
		Decision: model.DecisionReject,
		Comments: "insufficient rigor",
	})
	if err != nil {
		t.Fatalf("level-2 Decide: %v", err)
	}

	if second.Course.Status != model.CourseRejected {
		t.Errorf("course status = %s, want rejected", second.Course.Status)
	}
	if second.Course.RejectionReason != "insufficient rigor" {
		t.Errorf("rejection reason = %q", second.Course.RejectionReason)
	}
	if n := f.historyLen(); n != 3 {
		t.Errorf("history after submit+approve+reject = %d, want 3", n)
	}
	if f.recordCount() != 2 {
		t.Errorf("record count = %d, want 2", f.recordCount())
	}
}

func TestPendingCountWithoutCache(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	f.submit()

	count, err := f.svc.PendingCount(firstLineID)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if count != 1 {
		t.Errorf("pending count = %d, want 1", count)
	}
}

func TestGetApprovalVisibility(t *testing.T) {
	f := newFixture(t, defaultApprovalConfig())
	submitted := f.submit()

	if _, err := f.svc.GetApproval(submitted.Approval.ID, firstLineID); err != nil {
		t.Errorf("reviewer must see the record: %v", err)
	}
	if _, err := f.svc.GetApproval(submitted.Approval.ID, instructorID); err != nil {
		t.Errorf("instructor must see the record: %v", err)
	}
	_, err := f.svc.GetApproval(submitted.Approval.ID, schoolAdminID)
	wantKind(t, err, util.KindPermission)
}
