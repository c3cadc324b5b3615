package storage

import (
	"context"
	"fmt"

	"github.com/ruangkopi/cafe/config"
)

// Open boots the disk named by STORAGE_DISK.
func Open(ctx context.Context) (Disk, error) {
	switch config.StorageDefault() {
	case "s3":
		return NewS3Disk(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
	case "local", "":
		return NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", config.StorageDefault())
	}
}
