package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/utils"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"gorm.io/gorm"
)

const pingTimeout time.Duration = 5 * time.Second

func NewMongo(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(os.Getenv("MONGO_URI")).SetTimeout(utils.StoreTimeout()))
	if err != nil {
		return nil, fmt.Errorf("Could not connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		slog.Warn(fmt.Sprintf("Could not ping MongoDB: %v", err))
	}

	return client, nil
}

// NewStore opens the content store on the configured backend. The Postgres
// backend shares db with the accounts.
func NewStore(ctx context.Context, db *gorm.DB) (*store.Store, error) {
	var backend store.Backend

	switch utils.ContentBackend() {
	case utils.BackendMongo:
		client, err := NewMongo(ctx)
		if err != nil {
			return nil, err
		}

		database := os.Getenv("MONGO_DATABASE")
		if len(database) < 1 {
			database = "portfolio"
		}

		backend = store.NewMongoBackend(client, database)
	case utils.BackendMemory:
		slog.Warn("Using the in-memory content backend. Changes are lost on restart.")
		backend = store.NewMemoryBackend()
	default:
		g := store.NewGormBackend(db)
		if err := g.Migrate(); err != nil {
			return nil, fmt.Errorf("Could not migrate content document: %w", err)
		}

		backend = g
	}

	return store.New(backend, utils.StoreTimeout()), nil
}

// NewMedia connects to the S3-compatible media host and makes sure the bucket
// exists. It returns nil when no endpoint is configured.
func NewMedia(ctx context.Context) (*media.Service, error) {
	endpoint := strings.TrimSpace(os.Getenv("MEDIA_ENDPOINT"))
	if len(endpoint) < 1 {
		slog.Warn("Media endpoint not configured. Uploads are disabled.")
		return nil, nil
	}

	useSSL, err := strconv.ParseBool(os.Getenv("MEDIA_USE_SSL"))
	if err != nil {
		useSSL = true
	}

	region := os.Getenv("MEDIA_REGION")
	bucket := os.Getenv("MEDIA_BUCKET")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MEDIA_ACCESS_KEY"), os.Getenv("MEDIA_SECRET_KEY"), ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not create media client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("Could not check media bucket %s: %w", bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("Could not create media bucket %s: %w", bucket, err)
		}

		slog.Info(fmt.Sprintf("Created media bucket: %s", bucket))
	}

	publicURL := os.Getenv("MEDIA_PUBLIC_URL")
	if len(publicURL) < 1 {
		scheme := "https"
		if !useSSL {
			scheme = "http"
		}

		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}

	return media.NewService(client, media.Config{
		Bucket:    bucket,
		PublicURL: publicURL,
		MaxSize:   utils.MediaMaxSize(),
	}), nil
}
