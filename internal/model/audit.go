package model

import "encoding/json"

// AuditLog records one compliance-visible snapshot per successful workflow
// operation, written after the core transaction commits.
type AuditLog struct {
	BaseModel
	Action     string          `gorm:"size:64;not null;index" json:"action"`
	EntityType string          `gorm:"size:64;not null" json:"entityType"`
	EntityID   string          `gorm:"size:64;not null;index" json:"entityId"`
	ActorID    uint            `gorm:"index" json:"actorId"`
	Before     json.RawMessage `gorm:"type:json" json:"before,omitempty"`
	After      json.RawMessage `gorm:"type:json" json:"after,omitempty"`
	Note       string          `gorm:"type:text" json:"note"`
	Metadata   json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
