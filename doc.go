// Package gallery provides the backend of the Poetic Image Gallery: a static
// file server for the gallery page and a small set of JSON endpoints used by
// its front end.
//
// Nothing in the package keeps state between requests. Every operation is a
// function of its input and, for the theme suggestion, of the injected clock.
//
// # Key Components
//
//   - GalleryService: health status, board image listing, theme suggestion
//     and static asset lookup
//   - AssetStorage: interface for reading static assets (see the filesystem
//     package for the os.Root backed implementation)
//
// # Board Images
//
// The board image listing is a placeholder. Every valid board ID yields the
// same five demo image URLs; the board ID is validated and echoed back but not
// used to fetch anything.
//
// # Example Usage
//
//	root, _ := os.OpenRoot("./public")
//	service := gallery.NewGalleryService(filesystem.NewAssetStore(root), gallery.ServiceConfig{})
//
//	images, err := service.BoardImages(ctx, gallery.ImagesRequest{})
//	theme := service.Theme(ctx)
//
// See the http package for the REST API implementation.
package gallery
