package chat

import (
	"context"

	"github.com/rverdelli/PlatformVA/internal/entity"
)

type ConversationUsecase interface {
	Advance(ctx context.Context, req *entity.AdvanceRequest) (*entity.AdvanceResult, error)
}

type SettingsStore interface {
	Load(ctx context.Context) entity.Settings
}

type CatalogStore interface {
	Load(ctx context.Context) []entity.CatalogBlock
}
