package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/poeticgallery/gallery/clientcli"
)

const connectionCheckTimeout = 5 * time.Second

var (
	makeDefault bool
	assumeYes   bool

	boardValidator = validator.New()
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage server profiles",
	Long: `Manage server profiles in ~/.gallery/config.yaml (override with --config or GALLERY_CONFIG).

A profile names a gallery server and, optionally, the board that
'gallery-cli images' fetches when no board ID is given. Select one with
--profile or GALLERY_PROFILE; otherwise the default profile is used.`,
}

var configureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles (* marks the default)",
	Args:  cobra.NoArgs,
	RunE:  runConfigureList,
}

var configureShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile, the default one without a name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigureShow,
}

var configureAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create or update a profile",
	Long: `Create or update a profile.

Fields given with --endpoint, --board or --timeout are taken as is; the rest
are prompted for, pre-filled with the current values when the profile exists.
The server is checked after saving, and the board too when one is set.

Examples:
  gallery-cli configure add home
  gallery-cli configure add pages --endpoint https://me.github.io --board 470072049909241031 --default`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigureAdd,
}

var configureRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runConfigureRemove,
}

var configureSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Make a profile the default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigureSetDefault,
}

func init() {
	configureAddCmd.Flags().BoolVar(&makeDefault, "default", false, "make this the default profile")
	configureRemoveCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	configureCmd.AddCommand(configureListCmd, configureShowCmd, configureAddCmd, configureRemoveCmd, configureSetDefaultCmd)
}

// effectiveDefault names the profile used when none is selected, or "".
func effectiveDefault(profiles *clientcli.Profiles) string {
	p, err := profiles.Resolve("")
	if err != nil {
		return ""
	}
	return p.Name
}

func runConfigureList(cmd *cobra.Command, _ []string) error {
	profiles, err := clientcli.ReadProfiles(getConfigPath())
	if err != nil {
		return err
	}

	list := profiles.List()
	if len(list) == 0 && !jsonOutput {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Run 'gallery-cli configure add <name>' to create one.")
		return nil
	}

	return getFormatter().FormatProfileList(cmd.OutOrStdout(), list, effectiveDefault(profiles))
}

func runConfigureShow(cmd *cobra.Command, args []string) error {
	profiles, err := clientcli.ReadProfiles(getConfigPath())
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	p, err := profiles.Resolve(name)
	if err != nil {
		return err
	}

	return getFormatter().FormatProfileShow(cmd.OutOrStdout(), p, p.Name == effectiveDefault(profiles))
}

func runConfigureAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := getConfigPath()

	profiles, err := clientcli.ReadProfiles(path)
	if err != nil {
		return err
	}

	p, err := profiles.Resolve(args[0])
	if err != nil {
		p = clientcli.Profile{Name: args[0]}
	}

	if p, err = fillProfile(cmd, p); err != nil {
		if isCancelled(err) {
			_, _ = fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return err
	}

	replaced := profiles.Put(p)
	if makeDefault {
		_ = profiles.Use(p.Name)
	}
	if err := profiles.Write(path); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	verb := "added"
	if replaced {
		verb = "updated"
	}
	_, _ = fmt.Fprintf(out, "Profile '%s' %s", p.Name, verb)
	if profiles.Default == p.Name {
		_, _ = fmt.Fprint(out, " (default)")
	}
	_, _ = fmt.Fprintln(out, ".")

	checkProfile(cmd.Context(), out, p)
	return nil
}

// fillProfile applies the --endpoint, --board and --timeout flags to p
// and prompts for the fields they leave unset.
func fillProfile(cmd *cobra.Command, p clientcli.Profile) (clientcli.Profile, error) {
	flags := cmd.Flags()

	if flags.Changed("endpoint") {
		p.Endpoint = endpoint
	} else {
		v, err := ask("Endpoint URL", cmp.Or(p.Endpoint, clientcli.DefaultEndpoint), validateEndpoint)
		if err != nil {
			return p, err
		}
		p.Endpoint = v
	}
	if err := validateEndpoint(p.Endpoint); err != nil {
		return p, err
	}
	p.Endpoint = strings.TrimSuffix(p.Endpoint, "/")

	if flags.Changed("board") {
		p.BoardID = boardID
	} else {
		v, err := ask("Board ID (empty for the server default)", p.BoardID, validateBoardID)
		if err != nil {
			return p, err
		}
		p.BoardID = v
	}
	if err := validateBoardID(p.BoardID); err != nil {
		return p, err
	}

	if flags.Changed("timeout") {
		p.Timeout = timeout
	} else {
		current := ""
		if p.Timeout > 0 {
			current = p.Timeout.String()
		}
		v, err := ask("Request timeout (empty for the client default)", current, validateTimeout)
		if err != nil {
			return p, err
		}
		p.Timeout, _ = parseTimeout(v)
	}

	return p, nil
}

// checkProfile reports whether the saved profile can reach its server and board.
// Failures are warnings; the profile is already saved.
func checkProfile(ctx context.Context, out io.Writer, p clientcli.Profile) {
	ctx, cancel := context.WithTimeout(ctx, connectionCheckTimeout)
	defer cancel()

	cfg := p.Config()
	cfg.Timeout = connectionCheckTimeout
	client, err := clientcli.New(&cfg)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: %v\n", err)
		return
	}

	health, err := client.Health(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: could not reach %s: %v\n", client.Endpoint(), err)
		return
	}
	_, _ = fmt.Fprintf(out, "Server %s is %s (version %s).\n", client.Endpoint(), health.Status, health.Version)

	if p.BoardID == "" {
		return
	}
	images, err := client.BoardImages(ctx, p.BoardID)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: board %s was rejected: %v\n", p.BoardID, err)
		return
	}
	_, _ = fmt.Fprintf(out, "Board %s has %d image(s).\n", images.BoardID, images.Count)
}

func runConfigureRemove(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := getConfigPath()

	profiles, err := clientcli.ReadProfiles(path)
	if err != nil {
		return err
	}
	if _, err := profiles.Resolve(args[0]); err != nil {
		return err
	}

	if !assumeYes {
		confirm := promptui.Prompt{Label: fmt.Sprintf("Remove profile '%s'", args[0]), IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			_, _ = fmt.Fprintln(out, "Cancelled.")
			return nil //nolint:nilerr // declining is not an error
		}
	}

	if err := profiles.Delete(args[0]); err != nil {
		return err
	}
	if err := profiles.Write(path); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Profile '%s' removed.\n", args[0])
	return nil
}

func runConfigureSetDefault(cmd *cobra.Command, args []string) error {
	path := getConfigPath()

	profiles, err := clientcli.ReadProfiles(path)
	if err != nil {
		return err
	}
	if err := profiles.Use(args[0]); err != nil {
		return err
	}
	if err := profiles.Write(path); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default profile set to '%s'.\n", args[0])
	return nil
}

func ask(label, current string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
		Validate:  validate,
	}
	v, err := prompt.Run()
	return strings.TrimSpace(v), err
}

func isCancelled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF)
}

func validateEndpoint(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("endpoint URL is required")
	}
	return (&clientcli.Config{Endpoint: strings.TrimSpace(input)}).Validate()
}

// validateBoardID accepts an empty ID or ASCII digits, the same rule the server applies.
func validateBoardID(input string) error {
	if err := boardValidator.Var(strings.TrimSpace(input), "omitempty,number"); err != nil {
		return fmt.Errorf("board ID %q must be all digits", input)
	}
	return nil
}

func validateTimeout(input string) error {
	_, err := parseTimeout(input)
	return err
}

// parseTimeout parses an optional duration. Empty input means the client default.
func parseTimeout(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	if d < 0 {
		return 0, errors.New("timeout must not be negative")
	}
	return d, nil
}
