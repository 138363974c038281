package domain

import "time"

// Audit actions. Transition entries carry the status string itself as the
// action ("Creado"/"Actualizado" kept verbatim for the existing frontend).
const (
	ActionCreated = "Creado"
	ActionUpdated = "Actualizado"
)

// History is the append-only audit trail of a request. Rows are written once
// and never updated or deleted by the service; both foreign keys cascade with
// their parents.
type History struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RequestID string    `gorm:"type:uuid;not null;index" json:"request_id"`
	Request   *Request  `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
