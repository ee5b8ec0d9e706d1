package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ROLE_CITIZEN = "citizen"
	ROLE_ADMIN   = "admin"
)

// Citizen is a registered user of the platform. Premium entitlement fields
// (IsPremium, TrackingID, TotalPayment) are mutated exclusively by the
// payments reconciliation service.
type Citizen struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email        string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	PhotoURL     string         `gorm:"type:varchar(255);default:null" json:"photoURL" validate:"max=255"`
	Role         string         `gorm:"type:varchar(50);default:'citizen'" json:"role" validate:"oneof=citizen admin"`
	IsPremium    bool           `gorm:"default:false" json:"isPremium"`
	TrackingID   *string        `gorm:"type:varchar(32);default:null" json:"trackingId,omitempty"`
	TotalPayment int64          `gorm:"not null;default:0" json:"totalPayment"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Citizen) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
