package main

import (
	"cmp"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/poeticgallery/gallery/clientcli"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	endpoint   string
	boardID    string
	timeout    time.Duration
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "gallery-cli",
	Version: version,
	Short:   "Client for the gallery server API",
	Long: `Gallery CLI - client for the gallery server API

Endpoint resolution (later wins):
  1. profile from the config file (--profile, GALLERY_PROFILE or the default profile)
  2. GALLERY_ENDPOINT, GALLERY_BOARD_ID
  3. --endpoint, --board, --timeout`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.gallery/config.yaml, env: GALLERY_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: GALLERY_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: http://localhost:5000, env: GALLERY_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&boardID, "board", "", "board ID for images when none is given, and for configure add (env: GALLERY_BOARD_ID)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (default: 10s)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

// getConfigPath returns the profile file path from flag, env, or default.
func getConfigPath() string {
	return cmp.Or(cfgFile, os.Getenv(clientcli.EnvConfigPath), clientcli.DefaultConfigPath())
}

// buildConfig layers the selected profile, GALLERY_* env vars and flags, later winning.
// Without profiles the env vars and flags are used alone, unless a profile was named.
func buildConfig() (*clientcli.Config, error) {
	profileName := cmp.Or(profile, os.Getenv(clientcli.EnvProfile))

	var fromProfile clientcli.Config
	if path := getConfigPath(); path != "" {
		profiles, err := clientcli.ReadProfiles(path)
		if err != nil {
			return nil, err
		}

		p, err := profiles.Resolve(profileName)
		switch {
		case err == nil:
			fromProfile = p.Config()
		case profileName != "" || !errors.Is(err, clientcli.ErrNoProfiles):
			return nil, err
		}
	}

	return clientcli.MergeConfig(
		fromProfile,
		clientcli.ConfigFromEnv(),
		clientcli.Config{Endpoint: endpoint, BoardID: boardID, Timeout: timeout},
	), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient builds the client and returns the resolved config with it.
func getClient() (*clientcli.Client, *clientcli.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := clientcli.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
