package minio

import (
	"bytes"
	"context"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ArchiveRepo — хранение сырых ответов Commerce API в MinIO.
type ArchiveRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewArchiveRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ArchiveRepo {
	return &ArchiveRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Put сохраняет JSON-объект под указанным ключом.
func (a *ArchiveRepo) Put(ctx context.Context, key string, payload []byte) error {
	reader := bytes.NewReader(payload)

	_, err := a.mc.PutObject(ctx, a.cfg.BucketName, key, reader, int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureBucket создаёт бакет архива, если его ещё нет.
func (a *ArchiveRepo) EnsureBucket(ctx context.Context) error {
	exists, err := a.mc.BucketExists(ctx, a.cfg.BucketName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if exists {
		return nil
	}

	if err := a.mc.MakeBucket(ctx, a.cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
