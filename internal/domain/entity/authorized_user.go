package entity

import (
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/enum"
)

// AuthorizedUser is an allow-list entry. The lower-cased email is its id.
type AuthorizedUser struct {
	Email   string    `gorm:"size:255;primaryKey" json:"email" firestore:"-"`
	Role    enum.Role `gorm:"size:16;not null" json:"role" firestore:"role"`
	AddedBy string    `gorm:"size:255" json:"added_by,omitempty" firestore:"addedBy"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at" firestore:"addedAt"`
}

func (AuthorizedUser) TableName() string {
	return "authorized_users"
}
