package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DexToken is a tradeable token tracked on the DEX index. Market data
// is not stored here; it is attached at read time by the enrichment
// stage, keyed by contract address and network.
type DexToken struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	Symbol          string         `gorm:"column:symbol;not null" json:"symbol"`
	ContractAddress string         `gorm:"column:contract_address;not null" json:"contract_address"`
	Network         string         `gorm:"column:network;not null" json:"network"`
	LogoURL         string         `gorm:"column:logo_url" json:"logo_url"`
	IsActive        bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsApproved      bool           `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DexToken) TableName() string {
	return "dex_tokens"
}

func (d *DexToken) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
