package service

import (
	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
)

// MembershipFinder is the narrow membership lookup the resolver depends
// on, so tests can swap the real store for a fake.
type MembershipFinder interface {
	FindActiveMember(q repository.MemberQuery) (uint, error)
	FindFirstLineReviewer(institutionID uint) (uint, error)
	HasActiveRole(userID, institutionID uint, role model.MemberRole, facultyID *uint) (bool, error)
}

// ApproverResolver maps a review level onto the user who decides it:
// level 2 is an active school admin scoped to the course's school, level 3
// an active institution admin. Level 1 is assigned at submission time by
// the submission initiator, so the resolver never returns it.
type ApproverResolver struct {
	Members MembershipFinder
}

func NewApproverResolver(members MembershipFinder) *ApproverResolver {
	return &ApproverResolver{Members: members}
}

// Resolve returns the reviewer user ID for the given level, or 0 when no
// eligible reviewer exists. Levels outside the chain resolve to nobody;
// the caller decides the fallback.
func (r *ApproverResolver) Resolve(level int, institutionID, schoolID uint) (uint, error) {
	switch level {
	case 2:
		return r.Members.FindActiveMember(repository.MemberQuery{
			InstitutionID: institutionID,
			Role:          model.MemberRoleSchoolAdmin,
			SchoolID:      &schoolID,
		})
	case 3:
		return r.Members.FindActiveMember(repository.MemberQuery{
			InstitutionID: institutionID,
			Role:          model.MemberRoleAdmin,
		})
	default:
		return 0, nil
	}
}
