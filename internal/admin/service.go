package admin

import (
	"context"
	"errors"

	"tokenlaunch-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// modelFor maps a route kind to its model. Moderation covers every
// listing kind with the same approve/reject semantics.
func modelFor(kind string) (interface{}, error) {
	switch kind {
	case "icos":
		return &models.ICOProject{}, nil
	case "nfts":
		return &models.NFT{}, nil
	case "airdrops":
		return &models.Airdrop{}, nil
	case "dex-tokens":
		return &models.DexToken{}, nil
	default:
		return nil, errors.New("Unknown listing kind")
	}
}

// Approve makes a submission publicly visible.
func (s *Service) Approve(ctx context.Context, kind string, id uuid.UUID) error {
	return s.update(ctx, kind, id, map[string]interface{}{"is_approved": true})
}

// Reject hides a submission: unapproved and deactivated.
func (s *Service) Reject(ctx context.Context, kind string, id uuid.UUID) error {
	return s.update(ctx, kind, id, map[string]interface{}{
		"is_approved": false,
		"is_active":   false,
	})
}

func (s *Service) update(ctx context.Context, kind string, id uuid.UUID, updates map[string]interface{}) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("Listing not found")
	}
	return nil
}
