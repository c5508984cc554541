package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Airdrop is a claimable token-distribution campaign with a
// start/end window.
type Airdrop struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Symbol      string         `gorm:"column:symbol;not null" json:"symbol"`
	Description string         `gorm:"column:description" json:"description"`
	LogoURL     string         `gorm:"column:logo_url" json:"logo_url"`
	ClaimURL    string         `gorm:"column:claim_url" json:"claim_url"`
	Network     string         `gorm:"column:network;not null" json:"network"`
	TotalReward float64        `gorm:"column:total_reward;type:decimal(28,2)" json:"total_reward"`
	WinnerCount int            `gorm:"column:winner_count" json:"winner_count"`
	StartDate   *time.Time     `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"end_date"`
	IsActive    bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsApproved  bool           `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Airdrop) TableName() string {
	return "airdrops"
}

func (a *Airdrop) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
