package usecase

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// extractZip expands the archive at zipPath into destDir and returns the
// names of the extracted files
func extractZip(ctx context.Context, zipPath, destDir string) ([]string, error) {
	logger := ctxlog.From(ctx)

	zipReader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip archive", goerr.V("path", zipPath))
	}
	defer zipReader.Close()

	var extractedFiles []string
	var totalSize int64

	for _, file := range zipReader.File {
		if err := extractFile(file, destDir); err != nil {
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("file", file.Name))
		}

		extractedFiles = append(extractedFiles, file.Name)
		totalSize += int64(file.UncompressedSize64)
	}

	logger.Debug("Extracted archive",
		"path", zipPath,
		"dest_dir", destDir,
		"file_count", len(extractedFiles),
		"total_size_bytes", totalSize,
	)

	return extractedFiles, nil
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	// Security check: prevent path traversal attacks
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid file path detected: file=%s, dest=%s", file.Name, destPath)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories %s: %w", filepath.Dir(destPath), err)
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s in zip: %w", file.Name, err)
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", destPath, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return fmt.Errorf("failed to copy file content to %s: %w", destPath, err)
	}

	return nil
}

// copyFile copies src to dst, replacing dst
func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open source file", goerr.V("path", src))
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", dst))
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return goerr.Wrap(err, "failed to copy file", goerr.V("src", src), goerr.V("dst", dst))
	}
	return destination.Close()
}
