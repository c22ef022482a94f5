// Package clientcli provides a client library for the gallery server API.
//
// It covers the health, board images and theme endpoints, and includes
// profile-based configuration for managing connections to multiple servers.
//
// # Basic Usage
//
//	client, err := clientcli.New(&clientcli.Config{Endpoint: "http://localhost:5000"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	images, err := client.BoardImages(ctx, "470072049909241031")
//	if errors.Is(err, clientcli.ErrBadRequest) {
//		// board ID rejected by the server
//	}
//
// # Profiles
//
// Profiles live in ~/.gallery/config.yaml by default, keyed by name. A
// profile's board_id is the board fetched when the caller names none.
//
//	default: home
//	profiles:
//	  home:
//	    endpoint: http://localhost:5000
//	  pages:
//	    endpoint: https://gallery.example.com
//	    board_id: "470072049909241031"
//	    timeout: 5s
//
// Resolve one, layer the environment on top and build a client:
//
//	profiles, err := clientcli.ReadProfiles(clientcli.DefaultConfigPath())
//	p, err := profiles.Resolve("pages")
//	cfg := clientcli.MergeConfig(p.Config(), clientcli.ConfigFromEnv())
//	client, err := clientcli.New(cfg)
//	images, err := client.BoardImages(ctx, cfg.BoardID)
//
// # Output Formatting
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatImages(os.Stdout, images)
package clientcli
