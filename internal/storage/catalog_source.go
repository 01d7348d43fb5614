package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/internal/app/model"
)

// CatalogSource provides the raw static catalog, before normalization.
type CatalogSource interface {
	Load(ctx context.Context) ([]model.RawRestaurant, error)
	Name() string
}

// NewCatalogSource builds the source selected by configuration. It returns
// nil for the "none" source.
func NewCatalogSource(cfg *config.CatalogConfig) (CatalogSource, error) {
	switch cfg.Source {
	case "file":
		return NewCatalogSourceForPath(cfg.Path), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("catalog source s3 requires CATALOG_S3_BUCKET")
		}
		return NewS3CatalogSource(cfg.S3Region, cfg.S3Bucket, cfg.S3Key, cfg.S3AccessKeyID, cfg.S3SecretAccessKey), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}
}

// FileCatalogSource reads a JSON catalog document from disk.
type FileCatalogSource struct {
	path string
}

func NewFileCatalogSource(path string) *FileCatalogSource {
	return &FileCatalogSource{path: path}
}

func (s *FileCatalogSource) Name() string {
	return "file://" + s.path
}

func (s *FileCatalogSource) Load(ctx context.Context) ([]model.RawRestaurant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return model.ParseCatalog(data)
}

// StaticCatalogSource serves an in-memory catalog.
type StaticCatalogSource struct {
	entries []model.RawRestaurant
}

func NewStaticCatalogSource(entries []model.RawRestaurant) *StaticCatalogSource {
	return &StaticCatalogSource{entries: entries}
}

func (s *StaticCatalogSource) Name() string {
	return "static"
}

func (s *StaticCatalogSource) Load(ctx context.Context) ([]model.RawRestaurant, error) {
	return s.entries, nil
}
