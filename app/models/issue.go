package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	IssueStatusPending    = "pending"
	IssueStatusInProgress = "in-progress"
	IssueStatusResolved   = "resolved"
)

// Issue is a reported infrastructure problem. IsBoosted is mutated exclusively
// by the payments reconciliation service.
type Issue struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Description     string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Category        string         `gorm:"type:varchar(100)" json:"category" validate:"max=100"`
	Location        string         `gorm:"type:varchar(255)" json:"location" validate:"max=255"`
	Status          string         `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending in-progress resolved"`
	ReportedBy      string         `gorm:"type:varchar(150)" json:"reportedBy"`
	ReportedByEmail string         `gorm:"type:varchar(200);index" json:"reportedByEmail" validate:"required,email"`
	Upvotes         int            `gorm:"default:0" json:"upVotes"`
	IsUpvoted       bool           `gorm:"default:false" json:"isUpvoted"`
	IsBoosted       bool           `gorm:"default:false;index" json:"isBoosted"`
	ResolvedDate    *time.Time     `gorm:"type:timestamp;default:null" json:"resolvedDate,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Issue) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// BeforeCreate assigns a public UUID if none was set.
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	return nil
}
