package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poeticgallery/gallery"
	"github.com/poeticgallery/gallery/config"
	"github.com/poeticgallery/gallery/filesystem"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List the files served from the static root",
	Long: `Walk the static root and print every servable file with its size,
content type and SHA-256 etag.`,
	Args: cobra.NoArgs,
	RunE: runAssets,
}

func init() {
	assetsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	root, err := os.OpenRoot(cfg.Static.Root)
	if err != nil {
		return fmt.Errorf("open static root: %w", err)
	}
	defer func() { _ = root.Close() }()

	service := gallery.NewGalleryService(filesystem.NewAssetStore(root), gallery.ServiceConfig{
		Index: cfg.Static.Index,
	})

	entries, err := service.Assets(ctx)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	printAssets(cmd.OutOrStdout(), entries)
	return nil
}

func printAssets(w io.Writer, entries []gallery.AssetEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No assets found")
		return
	}

	maxPathLen := 4 // "PATH"
	for _, e := range entries {
		maxPathLen = max(maxPathLen, len(e.Path))
	}

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %-30s  %s\n", maxPathLen, "PATH", "SIZE", "CONTENT TYPE", "ETAG")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n", strings.Repeat("-", maxPathLen), strings.Repeat("-", 10), strings.Repeat("-", 30), strings.Repeat("-", 12))

	var total int64
	for _, e := range entries {
		etag := e.ETag
		if len(etag) > 12 {
			etag = etag[:12]
		}
		_, _ = fmt.Fprintf(w, "%-*s  %10d  %-30s  %s\n", maxPathLen, e.Path, e.Size, e.ContentType, etag)
		total += e.Size
	}

	_, _ = fmt.Fprintf(w, "\n%d asset(s) (%d bytes total)\n", len(entries), total)
}
