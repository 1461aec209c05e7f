package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/repository/memory"
	"github.com/custody-lab/themis/pkg/service/gcs"
	"github.com/custody-lab/themis/pkg/service/minio"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// ObjectStore holds CLI flags for object store backend configuration
type ObjectStore struct {
	backend string

	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioBucket    string
	minioUseSSL    bool

	gcsBucket string
}

// Flags returns CLI flags for object store configuration
func (x *ObjectStore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-backend",
			Usage:       "Object store backend type (minio, gcs or memory)",
			Category:    "Object store",
			Value:       "minio",
			Sources:     cli.EnvVars("THEMIS_STORE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "minio-endpoint",
			Usage:       "MinIO endpoint (host:port)",
			Category:    "Object store",
			Sources:     cli.EnvVars("THEMIS_MINIO_ENDPOINT"),
			Destination: &x.minioEndpoint,
		},
		&cli.StringFlag{
			Name:        "minio-access-key",
			Usage:       "MinIO access key",
			Category:    "Object store",
			Sources:     cli.EnvVars("THEMIS_MINIO_ACCESS_KEY"),
			Destination: &x.minioAccessKey,
		},
		&cli.StringFlag{
			Name:        "minio-secret-key",
			Usage:       "MinIO secret key",
			Category:    "Object store",
			Sources:     cli.EnvVars("THEMIS_MINIO_SECRET_KEY"),
			Destination: &x.minioSecretKey,
		},
		&cli.StringFlag{
			Name:        "minio-bucket",
			Usage:       "MinIO bucket name",
			Category:    "Object store",
			Value:       "evidence",
			Sources:     cli.EnvVars("THEMIS_MINIO_BUCKET"),
			Destination: &x.minioBucket,
		},
		&cli.BoolFlag{
			Name:        "minio-use-ssl",
			Usage:       "Use TLS for MinIO connections",
			Category:    "Object store",
			Sources:     cli.EnvVars("THEMIS_MINIO_USE_SSL"),
			Destination: &x.minioUseSSL,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket name (required for gcs backend)",
			Category:    "Object store",
			Sources:     cli.EnvVars("THEMIS_GCS_BUCKET"),
			Destination: &x.gcsBucket,
		},
	}
}

// LogValue returns the loggable representation with the secret key masked
func (x *ObjectStore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("minio_endpoint", x.minioEndpoint),
		slog.String("minio_bucket", x.minioBucket),
		slog.Bool("minio_use_ssl", x.minioUseSSL),
		slog.String("gcs_bucket", x.gcsBucket),
	)
}

// Configure initializes the object store for the configured backend. The
// returned closer releases backend resources and may be nil.
func (x *ObjectStore) Configure(ctx context.Context) (interfaces.ObjectStore, func(), error) {
	switch x.backend {
	case "minio":
		if x.minioEndpoint == "" {
			return nil, nil, goerr.New("minio-endpoint is required when using minio backend")
		}
		store, err := minio.New(x.minioEndpoint, x.minioAccessKey, x.minioSecretKey, x.minioBucket, x.minioUseSSL)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize minio client")
		}
		logging.Default().Info("Using MinIO object store",
			"endpoint", x.minioEndpoint,
			"bucket", x.minioBucket,
		)
		return store, nil, nil

	case "gcs":
		if x.gcsBucket == "" {
			return nil, nil, goerr.New("gcs-bucket is required when using gcs backend")
		}
		store, err := gcs.New(ctx, x.gcsBucket)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize cloud storage client")
		}
		logging.Default().Info("Using Cloud Storage object store", "bucket", x.gcsBucket)
		closer := func() {
			if err := store.Close(); err != nil {
				logging.Default().Warn("failed to close cloud storage client", "error", err)
			}
		}
		return store, closer, nil

	case "memory":
		logging.Default().Info("Using in-memory object store (development mode)")
		return memory.NewObjectStore(), nil, nil

	default:
		return nil, nil, goerr.New("invalid object store backend", goerr.V("backend", x.backend))
	}
}
