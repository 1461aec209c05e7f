package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/cli/config"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "themis.log")
		cfg := config.NewLoggerForTest("debug", "json", path)

		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("loud", "json", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestLedgerConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewLedgerForTest("memory", "", "", "")
		ledger, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Bool(t, ledger == nil).False()
	})

	t.Run("fabric backend requires registry", func(t *testing.T) {
		cfg := config.NewLedgerForTest("fabric", "mychannel", "custody", "")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := config.NewLedgerForTest("etcd", "", "", "")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestObjectStoreConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewObjectStoreForTest("memory")
		store, closer, err := cfg.Configure(context.Background())
		gt.NoError(t, err).Required()
		gt.Bool(t, store == nil).False()
		gt.Bool(t, closer == nil).True()
	})

	t.Run("minio backend requires endpoint", func(t *testing.T) {
		cfg := config.NewObjectStoreForTest("minio")
		_, _, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})

	t.Run("gcs backend requires bucket", func(t *testing.T) {
		cfg := config.NewObjectStoreForTest("gcs")
		_, _, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := config.NewObjectStoreForTest("s3")
		_, _, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})
}

func TestTransitConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewTransitForTest("memory")
		transit, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Bool(t, transit == nil).False()
	})

	t.Run("vault backend requires address and token", func(t *testing.T) {
		cfg := config.NewTransitForTest("vault")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := config.NewTransitForTest("kms")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}
