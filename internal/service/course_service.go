package service

import (
	"errors"

	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
	"unicourse_backend/internal/util"

	"gorm.io/gorm"
)

// CourseService covers the thin instructor-facing course surface. Workflow
// state never changes here; that is the ApprovalService's job.
type CourseService struct {
	Courses *repository.CourseRepository
	Members MembershipFinder
}

func NewCourseService(courseRepo *repository.CourseRepository, members MembershipFinder) *CourseService {
	return &CourseService{Courses: courseRepo, Members: members}
}

type CourseRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	FacultyID     uint   `json:"facultyId" binding:"required"`
	SchoolID      uint   `json:"schoolId" binding:"required"`
	InstitutionID uint   `json:"institutionId" binding:"required"`
}

func (s *CourseService) Create(instructorID uint, req CourseRequest) (*model.Course, error) {
	facultyID := req.FacultyID
	isFaculty, err := s.Members.HasActiveRole(instructorID, req.InstitutionID, model.MemberRoleFacultyMember, &facultyID)
	if err != nil {
		return nil, util.InternalError(err)
	}
	if !isFaculty {
		return nil, util.PermissionError("user %d holds no active faculty membership in faculty %d", instructorID, req.FacultyID)
	}

	course := &model.Course{
		Title:         req.Title,
		Description:   req.Description,
		InstructorID:  instructorID,
		FacultyID:     req.FacultyID,
		SchoolID:      req.SchoolID,
		InstitutionID: req.InstitutionID,
		Status:        model.CourseDraft,
	}
	if err := s.Courses.Create(course); err != nil {
		return nil, util.InternalError(err)
	}
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.Courses.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course %d not found", id)
		}
		return nil, util.InternalError(err)
	}
	return course, nil
}

// Update applies instructor edits. Edits are only allowed while the course
// is in an editable status; once a review is in flight the content is
// frozen for the reviewers.
func (s *CourseService) Update(id, instructorID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, util.PermissionError("only the course instructor can edit the course")
	}
	if !course.Status.Editable() {
		return nil, util.ConflictError("course in status %q cannot be edited", string(course.Status))
	}

	course.Title = req.Title
	course.Description = req.Description
	if err := s.Courses.Save(course); err != nil {
		return nil, util.InternalError(err)
	}
	return course, nil
}

func (s *CourseService) ListMine(instructorID uint, page, limit int) ([]model.Course, int64, error) {
	return s.Courses.ListByInstructor(instructorID, page, limit)
}
