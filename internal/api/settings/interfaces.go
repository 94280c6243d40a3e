package settings

import (
	"context"

	"github.com/rverdelli/PlatformVA/internal/entity"
)

type SettingsStore interface {
	Load(ctx context.Context) entity.Settings
	Save(ctx context.Context, settings entity.Settings) error
	Clear(ctx context.Context) error
}

type CatalogStore interface {
	Load(ctx context.Context) []entity.CatalogBlock
}
