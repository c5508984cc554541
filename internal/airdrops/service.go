package airdrops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenlaunch-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// FetchCollection pulls all publicly-visible airdrops, newest first.
func (s *Service) FetchCollection(ctx context.Context) ([]models.Airdrop, error) {
	var airdrops []models.Airdrop
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("created_at DESC").
		Find(&airdrops).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch airdrops: %v", err)
	}
	return airdrops, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Airdrop, error) {
	if id == uuid.Nil {
		return nil, errors.New("airdrop_id is required")
	}
	var airdrop models.Airdrop
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&airdrop).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Airdrop not found")
		}
		return nil, err
	}
	return &airdrop, nil
}

type SubmitInput struct {
	Name        string
	Symbol      string
	Description string
	LogoURL     string
	ClaimURL    string
	Network     string
	TotalReward float64
	WinnerCount int
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Airdrop, error) {
	airdrop := &models.Airdrop{
		Name:        in.Name,
		Symbol:      in.Symbol,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		ClaimURL:    in.ClaimURL,
		Network:     in.Network,
		TotalReward: in.TotalReward,
		WinnerCount: in.WinnerCount,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		IsApproved:  false,
	}
	if err := s.DB.WithContext(ctx).Create(airdrop).Error; err != nil {
		return nil, fmt.Errorf("Failed to create airdrop: %v", err)
	}
	return airdrop, nil
}
