package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
)

// maxCatalogObjectSize bounds the catalog download.
const maxCatalogObjectSize = 64 << 20

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3CatalogSource reads the catalog document from an S3 object.
type S3CatalogSource struct {
	client objectGetter
	bucket string
	key    string
}

func NewS3CatalogSource(region, bucket, key, accessKeyID, secretAccessKey string) *S3CatalogSource {
	var cfg aws.Config
	var err error

	// Static credentials when given, default chain otherwise
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"region": region,
				"error":  err.Error(),
			})
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &S3CatalogSource{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}
}

func (s *S3CatalogSource) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *S3CatalogSource) Load(ctx context.Context) ([]model.RawRestaurant, error) {
	logger.Info("Downloading catalog from S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    s.key,
	})

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxCatalogObjectSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object: %w", err)
	}
	return model.ParseCatalog(data)
}
