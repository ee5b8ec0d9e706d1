package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Review is a public platform review left by a citizen.
type Review struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReviewerName  string    `gorm:"type:varchar(150)" json:"reviewerName" validate:"required,min=2,max=150"`
	ReviewerEmail string    `gorm:"type:varchar(200);index" json:"reviewerEmail" validate:"required,email"`
	PhotoURL      string    `gorm:"type:varchar(255);default:null" json:"photoURL" validate:"max=255"`
	Rating        int       `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Comment       string    `gorm:"type:text" json:"comment" validate:"max=2000"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
