package catalog

import (
	"context"

	"github.com/rverdelli/PlatformVA/internal/entity"
)

type CatalogStore interface {
	Replace(ctx context.Context, raw []byte) ([]entity.CatalogBlock, error)
	TemplateBytes() []byte
}
