package dex

import (
	"context"
	"errors"
	"fmt"

	"tokenlaunch-backend/internal/marketdata"
	"tokenlaunch-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB       *gorm.DB
	Enricher *marketdata.Enricher
}

// FetchCollection pulls all publicly-visible DEX tokens, newest first,
// and kicks off enrichment for any token not yet tracked. Enrichment
// is fire-and-forget: the caller renders immediately with loading
// attachments and later reads land via snapshots.
func (s *Service) FetchCollection(ctx context.Context) ([]models.DexToken, error) {
	var tokens []models.DexToken
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("created_at DESC").
		Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch DEX tokens: %v", err)
	}
	s.Enricher.Begin(Targets(tokens))
	return tokens, nil
}

// Refresh resets every token's market data to loading and re-fetches.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	var tokens []models.DexToken
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Find(&tokens).Error; err != nil {
		return 0, fmt.Errorf("Failed to fetch DEX tokens: %v", err)
	}
	s.Enricher.Refresh(Targets(tokens))
	return len(tokens), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.DexToken, error) {
	if id == uuid.Nil {
		return nil, errors.New("token_id is required")
	}
	var token models.DexToken
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Token not found")
		}
		return nil, err
	}
	return &token, nil
}

type SubmitInput struct {
	Name            string
	Symbol          string
	ContractAddress string
	Network         string
	LogoURL         string
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.DexToken, error) {
	token := &models.DexToken{
		Name:            in.Name,
		Symbol:          in.Symbol,
		ContractAddress: in.ContractAddress,
		Network:         in.Network,
		LogoURL:         in.LogoURL,
		IsActive:        true,
		IsApproved:      false,
	}
	if err := s.DB.WithContext(ctx).Create(token).Error; err != nil {
		return nil, fmt.Errorf("Failed to create DEX token: %v", err)
	}
	return token, nil
}

// Targets maps tokens to enrichment targets keyed by record id.
func Targets(tokens []models.DexToken) []marketdata.Target {
	out := make([]marketdata.Target, len(tokens))
	for i, t := range tokens {
		out[i] = marketdata.Target{
			ID:      t.ID.String(),
			Network: t.Network,
			Address: t.ContractAddress,
		}
	}
	return out
}
