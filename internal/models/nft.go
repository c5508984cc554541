package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NFT is an NFT-collection listing. No lifecycle window: NFTs carry no
// derived status.
type NFT struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Symbol         string         `gorm:"column:symbol" json:"symbol"`
	Description    string         `gorm:"column:description" json:"description"`
	ImageURL       string         `gorm:"column:image_url" json:"image_url"`
	MarketplaceURL string         `gorm:"column:marketplace_url" json:"marketplace_url"`
	Blockchain     string         `gorm:"column:blockchain;not null" json:"blockchain"`
	ListingType    string         `gorm:"column:listing_type;type:varchar(10);default:'free'" json:"listing_type"`
	FloorPrice     float64        `gorm:"column:floor_price;type:decimal(18,8)" json:"floor_price"`
	CollectionSize int            `gorm:"column:collection_size" json:"collection_size"`
	Traits         datatypes.JSON `gorm:"column:traits" json:"traits"`
	IsActive       bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsApproved     bool           `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (NFT) TableName() string {
	return "nfts"
}

func (n *NFT) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
