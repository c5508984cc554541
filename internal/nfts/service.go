package nfts

import (
	"context"
	"errors"
	"fmt"

	"tokenlaunch-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// FetchCollection pulls all publicly-visible NFT listings, newest first.
func (s *Service) FetchCollection(ctx context.Context) ([]models.NFT, error) {
	var nfts []models.NFT
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("created_at DESC").
		Find(&nfts).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch NFTs: %v", err)
	}
	return nfts, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.NFT, error) {
	if id == uuid.Nil {
		return nil, errors.New("nft_id is required")
	}
	var nft models.NFT
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&nft).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("NFT not found")
		}
		return nil, err
	}
	return &nft, nil
}

type SubmitInput struct {
	Name           string
	Symbol         string
	Description    string
	ImageURL       string
	MarketplaceURL string
	Blockchain     string
	ListingType    string
	FloorPrice     float64
	CollectionSize int
	Traits         datatypes.JSON
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.NFT, error) {
	listingType := in.ListingType
	if listingType == "" {
		listingType = "free"
	}
	nft := &models.NFT{
		Name:           in.Name,
		Symbol:         in.Symbol,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		MarketplaceURL: in.MarketplaceURL,
		Blockchain:     in.Blockchain,
		ListingType:    listingType,
		FloorPrice:     in.FloorPrice,
		CollectionSize: in.CollectionSize,
		Traits:         in.Traits,
		IsActive:       true,
		IsApproved:     false,
	}
	if err := s.DB.WithContext(ctx).Create(nft).Error; err != nil {
		return nil, fmt.Errorf("Failed to create NFT: %v", err)
	}
	return nft, nil
}
