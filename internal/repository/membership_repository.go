package repository

import (
	"errors"

	"unicourse_backend/internal/model"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	DB *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

// MemberQuery narrows an active-member lookup. SchoolID/FacultyID of nil
// mean "any scope".
type MemberQuery struct {
	InstitutionID uint
	Role          model.MemberRole
	SchoolID      *uint
	FacultyID     *uint
}

// FindActiveMember returns the user ID of one active member matching the
// query, or 0 when none exists. Only normalized MemberRole values ever
// match; unknown roles resolve to nobody.
func (r *MembershipRepository) FindActiveMember(q MemberQuery) (uint, error) {
	if !q.Role.Valid() {
		return 0, nil
	}

	query := r.DB.Model(&model.Membership{}).
		Where("institution_id = ? AND role = ? AND is_active = ?", q.InstitutionID, q.Role, true)
	if q.SchoolID != nil {
		query = query.Where("school_id = ?", *q.SchoolID)
	}
	if q.FacultyID != nil {
		query = query.Where("faculty_id = ?", *q.FacultyID)
	}

	var m model.Membership
	err := query.Order("id asc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m.UserID, nil
}

// FindFirstLineReviewer picks the institution's first-pass reviewer for a
// fresh submission: an active admin, falling back to the owner.
func (r *MembershipRepository) FindFirstLineReviewer(institutionID uint) (uint, error) {
	for _, role := range []model.MemberRole{model.MemberRoleAdmin, model.MemberRoleOwner} {
		id, err := r.FindActiveMember(MemberQuery{InstitutionID: institutionID, Role: role})
		if err != nil {
			return 0, err
		}
		if id != 0 {
			return id, nil
		}
	}
	return 0, nil
}

// HasActiveRole reports whether the user holds the given active role in the
// institution, optionally scoped to a faculty.
func (r *MembershipRepository) HasActiveRole(userID, institutionID uint, role model.MemberRole, facultyID *uint) (bool, error) {
	if !role.Valid() {
		return false, nil
	}

	query := r.DB.Model(&model.Membership{}).
		Where("user_id = ? AND institution_id = ? AND role = ? AND is_active = ?", userID, institutionID, role, true)
	if facultyID != nil {
		query = query.Where("faculty_id = ?", *facultyID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MembershipRepository) Create(m *model.Membership) error {
	return r.DB.Create(m).Error
}
