package export

import (
	"context"
	"fmt"

	"photovault/internal/config"
	"photovault/internal/pv"
)

// NewExporterFromConfig creates the configured export destination. Type
// "none" returns a nil exporter and no error.
func NewExporterFromConfig(ctx context.Context, cfg config.ExportConfig) (pv.Exporter, error) {
	var exporter pv.Exporter
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem export requires dir to be set")
		}
		dir, err := NewDirExporter(cfg.Dir)
		if err != nil {
			return nil, err
		}
		exporter = dir
	case "s3":
		bucket, err := NewS3Exporter(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		exporter = bucket
	default:
		return nil, fmt.Errorf("unknown export type: %s", cfg.Type)
	}

	if len(cfg.AgeRecipients) > 0 {
		encrypted, err := NewAgeExporter(exporter, cfg.AgeRecipients)
		if err != nil {
			return nil, err
		}
		return encrypted, nil
	}
	return exporter, nil
}

var (
	_ pv.Exporter = (*DirExporter)(nil)
	_ pv.Exporter = (*S3Exporter)(nil)
	_ pv.Exporter = (*AgeExporter)(nil)
)
