package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"go.uber.org/zap"
)

const catalogCacheKey = "catalog"

// templateHeaders are the required catalog columns, in template order.
var templateHeaders = []string{"block_name", "functionality_description"}

// CatalogFile persists the solution-block catalog as a CSV file. Uploads
// replace the file wholesale; row order is preserved and uniqueness is not
// enforced.
type CatalogFile struct {
	path  string
	cache *gocache.Cache
	mu    sync.RWMutex
}

func NewCatalogFile(path string, cacheTTL time.Duration) *CatalogFile {
	return &CatalogFile{
		path:  path,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Load returns every catalog row with blank cells coerced to empty strings.
// A file that is absent, unparsable or missing a required column yields an
// empty catalog rather than a partial one.
func (c *CatalogFile) Load(ctx context.Context) []entity.CatalogBlock {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		return cached.([]entity.CatalogBlock)
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}

	blocks, err := parseCatalog(raw)
	if err != nil {
		ctxzap.Warn(ctx, "catalog file is invalid, treating catalog as empty",
			zap.String("path", c.path),
			zap.Error(err),
		)
		return nil
	}

	c.cache.SetDefault(catalogCacheKey, blocks)

	return blocks
}

// Replace persists raw verbatim to the catalog file first, even if parsing
// later fails, so the operator can inspect a rejected upload on disk. It then
// parses and validates the columns.
func (c *CatalogFile) Replace(ctx context.Context, raw []byte) ([]entity.CatalogBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(catalogCacheKey)

	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write catalog file: %w", err)
	}

	blocks, err := parseCatalog(raw)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(catalogCacheKey, blocks)

	ctxzap.Info(ctx, "catalog replaced",
		zap.String("path", c.path),
		zap.Int("rows", len(blocks)),
	)

	return blocks, nil
}

// TemplateBytes returns a header-only CSV with the required columns in fixed
// order, for the operator to fill in and re-upload.
func (c *CatalogFile) TemplateBytes() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(templateHeaders)
	w.Flush()
	return buf.Bytes()
}

func parseCatalog(raw []byte) ([]entity.CatalogBlock, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedCatalog, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingColumns, strings.Join(templateHeaders, ", "))
	}

	header := records[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	var missing []string
	for _, required := range templateHeaders {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingColumns, strings.Join(missing, ", "))
	}

	nameIdx := columns[templateHeaders[0]]
	descIdx := columns[templateHeaders[1]]

	blocks := make([]entity.CatalogBlock, 0, len(records)-1)
	for _, row := range records[1:] {
		blocks = append(blocks, entity.CatalogBlock{
			BlockName:                cell(row, nameIdx),
			FunctionalityDescription: cell(row, descIdx),
		})
	}

	return blocks, nil
}

// cell returns the field at idx, or "" for short rows.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
