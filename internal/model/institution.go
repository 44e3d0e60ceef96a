package model

// MemberRole is the single normalized role vocabulary shared by the
// membership store and the approver resolver. Call sites must never
// compare against raw strings.
type MemberRole string

const (
	MemberRoleOwner         MemberRole = "owner"
	MemberRoleAdmin         MemberRole = "admin"
	MemberRoleSchoolAdmin   MemberRole = "school_admin"
	MemberRoleFacultyMember MemberRole = "faculty_member"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleSchoolAdmin, MemberRoleFacultyMember:
		return true
	}
	return false
}

// swagger:model Institution
type Institution struct {
	BaseModel
	Name     string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Code     string `gorm:"size:32;uniqueIndex" json:"code"`
	Website  string `gorm:"size:255" json:"website"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Institution) TableName() string {
	return "institutions"
}

// swagger:model School
type School struct {
	BaseModel
	InstitutionID uint   `gorm:"index;not null" json:"institutionId"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Code          string `gorm:"size:32" json:"code"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
}

func (School) TableName() string {
	return "schools"
}

// swagger:model Faculty
type Faculty struct {
	BaseModel
	SchoolID      uint   `gorm:"index;not null" json:"schoolId"`
	InstitutionID uint   `gorm:"index;not null" json:"institutionId"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Code          string `gorm:"size:32" json:"code"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
}

func (Faculty) TableName() string {
	return "faculties"
}

// Membership scopes a user to an institution with one role. SchoolID and
// FacultyID narrow the scope for school_admin and faculty_member roles.
type Membership struct {
	BaseModel
	UserID        uint       `gorm:"index;not null" json:"userId"`
	InstitutionID uint       `gorm:"index;not null" json:"institutionId"`
	Role          MemberRole `gorm:"size:32;not null;index" json:"role"`
	SchoolID      *uint      `gorm:"index" json:"schoolId,omitempty"`
	FacultyID     *uint      `gorm:"index" json:"facultyId,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
}

func (Membership) TableName() string {
	return "memberships"
}
