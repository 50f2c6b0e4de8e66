package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mjcet-acm/site-backend/config"
)

// RunBackup dumps the database, gzips it, uploads it to the backup bucket
// and rotates old backups. Called from cmd/backup and from the in-process
// cron schedule.
func RunBackup(ctx context.Context, cfg *config.Config) error {
	if cfg.BackupS3Bucket == "" {
		return fmt.Errorf("backup bucket not configured")
	}

	dump, err := createDump(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating database dump: %w", err)
	}

	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating s3 client: %w", err)
	}

	key := fmt.Sprintf("backup-%s.sql.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	if err := Upload(ctx, client, cfg.BackupS3Bucket, key, dump); err != nil {
		return fmt.Errorf("uploading backup: %w", err)
	}
	log.Info().Str("bucket", cfg.BackupS3Bucket).Str("key", key).Msg("backup uploaded")

	if err := Rotate(ctx, client, cfg.BackupS3Bucket, cfg.BackupKeep); err != nil {
		return fmt.Errorf("rotating backups: %w", err)
	}

	return nil
}

func createDump(ctx context.Context, cfg *config.Config) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // password comes from PGPASSWORD
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, stdout); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
