package store

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

func (s *Store) Backup(ctx context.Context) error {
	dir := filepath.Join(filepath.Dir(s.path), "backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	dest := filepath.Join(dir, fmt.Sprintf("%s_strompris.db", time.Now().Format("20060102_150405")))
	_, err := s.write.ExecContext(ctx, "VACUUM INTO ?", dest)
	if err != nil {
		return fmt.Errorf("vacuuming store into '%s': %w", dest, err)
	}

	zipPath := dest + ".zip"
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create zip file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	dbFile, err := os.Open(dest)
	if err != nil {
		return fmt.Errorf("open store backup for compression: %w", err)
	}
	defer dbFile.Close()

	fileInfo, err := dbFile.Stat()
	if err != nil {
		return fmt.Errorf("get file info: %w", err)
	}

	header, err := zip.FileInfoHeader(fileInfo)
	if err != nil {
		return fmt.Errorf("create zip header: %w", err)
	}
	header.Name = filepath.Base(s.path)
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create zip file entry: %w", err)
	}

	if _, err := io.Copy(writer, dbFile); err != nil {
		return fmt.Errorf("write store to zip: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finalize zip file: %w", err)
	}

	if err := os.Remove(dest); err != nil {
		s.logger.Warn("could not remove original backup after compression", slog.String("error", err.Error()))
	}

	s.logger.Info("store backup complete", slog.String("filename", zipPath))

	return nil
}

func (s *Store) PurgeBackups(ctx context.Context, retentionDays int) error {
	if retentionDays < 1 {
		return nil
	}
	retentionDuration := time.Duration(retentionDays) * 24 * time.Hour

	dir := filepath.Join(filepath.Dir(s.path), "backups")
	s.logger.Debug("purging old backups", slog.String("dir", dir))

	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read backup directory: %w", err)
	}

	re := regexp.MustCompile(`^\d{8}_\d{6}_strompris\.db\.zip$`)
	for _, f := range files {
		if f.IsDir() || !re.MatchString(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			s.logger.Warn("could not stat backup file", slog.String("file", f.Name()), slog.Any("error", err))
			continue
		}
		if time.Since(info.ModTime()) > retentionDuration {
			if err := os.Remove(filepath.Join(dir, f.Name())); err != nil {
				s.logger.Warn("could not remove old backup", slog.String("file", f.Name()), slog.Any("error", err))
			} else {
				s.logger.Debug("removed old backup", slog.String("file", f.Name()))
			}
		}
	}

	return nil
}
