package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ICOProject is a token-sale listing. start/end dates drive the
// derived upcoming/live/completed status; they are nullable and not
// validated here (start < end is the submitter's problem).
type ICOProject struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Symbol      string         `gorm:"column:symbol;not null" json:"symbol"`
	Description string         `gorm:"column:description" json:"description"`
	LogoURL     string         `gorm:"column:logo_url" json:"logo_url"`
	WebsiteURL  string         `gorm:"column:website_url" json:"website_url"`
	Network     string         `gorm:"column:network;not null" json:"network"`
	ListingType string         `gorm:"column:listing_type;type:varchar(10);default:'free'" json:"listing_type"`
	TokenPrice  float64        `gorm:"column:token_price;type:decimal(18,8)" json:"token_price"`
	TotalSupply float64        `gorm:"column:total_supply;type:decimal(28,2)" json:"total_supply"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags"`
	StartDate   *time.Time     `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"end_date"`
	IsActive    bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsApproved  bool           `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ICOProject) TableName() string {
	return "ico_projects"
}

func (p *ICOProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
