package main

import (
	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images [board-id]",
	Short: "Fetch the images of a board",
	Long: `Call POST /api/pinterest/images for a board.

Without a board ID argument the board comes from --board, GALLERY_BOARD_ID
or the profile's board_id, in that order. With none of them set the server
picks its default board. Board IDs must be all digits; anything else is
rejected by the server with 400.

Examples:
  gallery-cli images
  gallery-cli images --profile pages
  gallery-cli images 470072049909241031
  gallery-cli images 123 --quiet | xargs -n1 curl -O`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImages,
}

func runImages(cmd *cobra.Command, args []string) error {
	client, cfg, err := getClient()
	if err != nil {
		return err
	}

	board := cfg.BoardID
	if len(args) > 0 {
		board = args[0]
	}

	result, err := client.BoardImages(cmd.Context(), board)
	if err != nil {
		return err
	}

	return getFormatter().FormatImages(cmd.OutOrStdout(), result)
}
