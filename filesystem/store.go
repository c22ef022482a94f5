// Package filesystem provides the file system backend for gallery static assets.
// All lookups go through an os.Root, so paths cannot escape the static root.
// Content types are detected from file extensions and etags are SHA256 based.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"syscall"

	"github.com/poeticgallery/gallery"
)

// Store provides read-only access to the static asset root.
type Store struct {
	root *os.Root
}

// NewAssetStore creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewAssetStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Open opens a regular file for reading. Returns gallery.ErrNotFound if the file
// does not exist, is a directory, or lies outside the root.
func (s *Store) Open(ctx context.Context, name string) (gallery.Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return gallery.Asset{}, nil, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || isEscape(err) {
			return gallery.Asset{}, nil, gallery.ErrNotFound
		}
		return gallery.Asset{}, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return gallery.Asset{}, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return gallery.Asset{}, nil, gallery.ErrNotFound
	}

	return gallery.Asset{
		Path:        name,
		ContentType: detectContentType(name),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, f, nil
}

// List recursively walks the root directory and returns all files with their
// path, size, SHA256-based etag, and detected content type.
func (s *Store) List(ctx context.Context) ([]gallery.AssetEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []gallery.AssetEntry{}

	err := s.walkDir(ctx, ".", &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, dir string, entries *[]gallery.AssetEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := path.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, entries); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		etag, err := s.hashFile(entryPath)
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		*entries = append(*entries, gallery.AssetEntry{
			Path:        entryPath,
			Size:        info.Size(),
			ETag:        etag,
			ContentType: detectContentType(entryPath),
		})
	}

	return nil
}

func (s *Store) hashFile(name string) (string, error) {
	f, err := s.root.Open(name)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	_, copyErr := io.Copy(h, f)

	if closeErr := f.Close(); closeErr != nil {
		slog.Warn("failed to close file", "path", name, "err", closeErr)
	}

	if copyErr != nil {
		return "", copyErr
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// os.Root does not export its escape error, only its message.
const errPathEscapes = "path escapes from parent"

// isEscape reports whether err comes from os.Root refusing a path outside the root,
// for example through a symlink.
func isEscape(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && pathErr.Err != nil && pathErr.Err.Error() == errPathEscapes
}

func detectContentType(name string) string {
	contentType := mime.TypeByExtension(path.Ext(name))

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
