package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/safe"
)

// Client stores encrypted payloads in a MinIO (S3 compatible) bucket
type Client struct {
	mc     *minio.Client
	bucket string
}

// New creates a MinIO object store client
func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Client, error) {
	if endpoint == "" || bucket == "" {
		return nil, goerr.Wrap(types.ErrValidation, "minio endpoint and bucket are required")
	}
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create minio client")
	}
	return &Client{mc: mc, bucket: bucket}, nil
}

func (x *Client) Put(ctx context.Context, key string, data []byte) error {
	_, err := x.mc.PutObject(ctx, x.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to upload object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return nil
}

func (x *Client) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := x.mc.GetObject(ctx, x.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to request object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, obj)

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, goerr.Wrap(types.ErrNotFound, "object not found", goerr.V(types.ObjectKeyKey, key))
		}
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to download object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return data, nil
}

func (x *Client) Delete(ctx context.Context, key string) error {
	if err := x.mc.RemoveObject(ctx, x.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to delete object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return nil
}
