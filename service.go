package gallery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
)

// AssetStorage defines the interface for reading static gallery assets.
// Implementations must confine every lookup to their root directory.
//
// All methods accept a context for cancellation control.
type AssetStorage interface {
	// Open opens the asset at path for reading.
	//
	// Returns:
	//   - Asset: path, detected content type, size and modification time
	//   - io.ReadSeekCloser: the asset content; the caller must close it
	//   - error: ErrNotFound if the path does not name a regular file
	Open(ctx context.Context, path string) (Asset, io.ReadSeekCloser, error)

	// List walks the whole root and returns every regular file with its
	// size, SHA-256 etag and content type.
	List(ctx context.Context) ([]AssetEntry, error)
}

// demoImages stands in for a real board fetch. It is identical for every board.
var demoImages = []string{
	"https://i.pinimg.com/564x/93/43/d3/9343d3e6c382103f568636f890250917.jpg",
	"https://i.pinimg.com/564x/a2/8b/6e/a28b6e6c4a8f9026d36e2f1e1e4a6a5d.jpg",
	"https://i.pinimg.com/564x/f3/7a/a8/f37aa831c2c31c4f55a1e2f8d3d9241b.jpg",
	"https://i.pinimg.com/564x/4b/9e/a5/4b9ea59a1e1e3b6e7f1e1c3b6e7a2b2e.jpg",
	"https://i.pinimg.com/564x/e7/8a/a5/e78aa5f2a1a8c909e7e7a5d3f2d2a4a7.jpg",
}

// DemoImages returns a copy of the placeholder image list.
func DemoImages() []string {
	return slices.Clone(demoImages)
}

type GalleryService struct {
	storage  AssetStorage
	index    string
	clock    func() time.Time
	location *time.Location
	validate *validator.Validate
	logger   *slog.Logger
}

// ServiceConfig holds configuration options for GalleryService.
type ServiceConfig struct {
	Index    string           // Entry file served for "/" (default: index.html)
	Clock    func() time.Time // Source of the current time (default: time.Now)
	Location *time.Location   // Zone used for the theme hour (default: time.Local)
	Logger   *slog.Logger     // default: slog.Default()
}

func NewGalleryService(storage AssetStorage, cfg ServiceConfig) *GalleryService {
	s := &GalleryService{
		storage:  storage,
		index:    cfg.Index,
		clock:    cfg.Clock,
		location: cfg.Location,
		validate: validator.New(),
		logger:   cfg.Logger,
	}
	if s.index == "" {
		s.index = "index.html"
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Health reports that the process is up. It has no failure modes.
func (s *GalleryService) Health(_ context.Context) HealthStatus {
	return HealthStatus{Status: "healthy", Version: Version}
}

// BoardImages validates the requested board ID and returns the placeholder image list.
//
// An absent board_id resolves to DefaultBoardID. The resolved ID must be
// non-empty and consist only of ASCII decimal digits, otherwise
// ErrInvalidBoardID is returned.
func (s *GalleryService) BoardImages(ctx context.Context, req ImagesRequest) (BoardImages, error) {
	if err := ctx.Err(); err != nil {
		return BoardImages{}, fmt.Errorf("board images: %w", err)
	}

	boardID := ResolveBoardID(req)
	if err := s.validate.Var(boardID, "required,number"); err != nil {
		return BoardImages{}, fmt.Errorf("board images %q: %w", boardID, ErrInvalidBoardID)
	}

	images := DemoImages()
	s.logger.InfoContext(ctx, "fetched images", "count", len(images), "board_id", boardID)

	return BoardImages{
		Images:  images,
		BoardID: boardID,
		Count:   len(images),
	}, nil
}

// Theme suggests a theme from the current hour in the configured location.
func (s *GalleryService) Theme(_ context.Context) ThemeSuggestion {
	hour := s.clock().In(s.location).Hour()
	return ThemeSuggestion{
		Theme: ThemeForHour(hour),
		Hour:  hour,
		Note:  ThemeNote,
	}
}

// Asset opens a static asset. The empty path resolves to the entry file.
// Paths that fail IsValidPath are reported as ErrNotFound, the same as missing files.
func (s *GalleryService) Asset(ctx context.Context, path string) (Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, nil, fmt.Errorf("get asset: %w", err)
	}

	if path == "" {
		path = s.index
	}

	if !IsValidPath(path) {
		return Asset{}, nil, fmt.Errorf("get asset %q: %w", path, ErrNotFound)
	}

	a, f, err := s.storage.Open(ctx, path)
	if err != nil {
		return Asset{}, nil, fmt.Errorf("get asset: %w", err)
	}

	return a, f, nil
}

// Assets lists every servable static asset.
func (s *GalleryService) Assets(ctx context.Context) ([]AssetEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	entries, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	return entries, nil
}
