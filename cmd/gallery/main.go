package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/poeticgallery/gallery"
	"github.com/poeticgallery/gallery/config"
)

var version = gallery.Version

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "gallery",
	Short:   "Poetic gallery web server",
	Long: `Gallery serves the poetic gallery front end together with a small JSON API
for health checks, board images and theme suggestions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("error reading .env file", "err", err)
		}

		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = append(configFiles, configFile)
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := newLogger(os.Stdout, cfg.Env, cfg.Log.Level)
		slog.SetDefault(logger)

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./gallery.yaml)")
	rootCmd.PersistentFlags().String("static-root", "", "directory served as the site root (default: ., env: GALLERY_STATIC_ROOT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: GALLERY_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
