package icos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenlaunch-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// FetchCollection pulls the whole publicly-visible collection, newest
// first. No pagination or search is pushed to the store: the pipeline
// filters in memory, collections are small.
func (s *Service) FetchCollection(ctx context.Context) ([]models.ICOProject, error) {
	var projects []models.ICOProject
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch ICO projects: %v", err)
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ICOProject, error) {
	if id == uuid.Nil {
		return nil, errors.New("ico_id is required")
	}
	var project models.ICOProject
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("ICO project not found")
		}
		return nil, err
	}
	return &project, nil
}

type SubmitInput struct {
	Name        string
	Symbol      string
	Description string
	LogoURL     string
	WebsiteURL  string
	Network     string
	ListingType string
	TokenPrice  float64
	TotalSupply float64
	Tags        datatypes.JSON
	StartDate   *time.Time
	EndDate     *time.Time
}

// Submit creates an unapproved project; moderation flips is_approved.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.ICOProject, error) {
	listingType := in.ListingType
	if listingType == "" {
		listingType = "free"
	}
	project := &models.ICOProject{
		Name:        in.Name,
		Symbol:      in.Symbol,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		WebsiteURL:  in.WebsiteURL,
		Network:     in.Network,
		ListingType: listingType,
		TokenPrice:  in.TokenPrice,
		TotalSupply: in.TotalSupply,
		Tags:        in.Tags,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		IsApproved:  false,
	}
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("Failed to create ICO project: %v", err)
	}
	return project, nil
}
