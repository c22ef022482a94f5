package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter formats results for output.
type Formatter interface {
	FormatHealth(w io.Writer, result *HealthResult) error
	FormatImages(w io.Writer, result *ImagesResult) error
	FormatTheme(w io.Writer, result *ThemeResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
// In quiet mode only the essential value is printed: the status, one URL per line, or the theme.
type HumanFormatter struct {
	Quiet bool
}

// FormatHealth formats a health result as human-readable text.
func (f *HumanFormatter) FormatHealth(w io.Writer, result *HealthResult) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, result.Status)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Status:  %s\n", result.Status)
	_, _ = fmt.Fprintf(w, "Version: %s\n", result.Version)
	return nil
}

// FormatImages formats board images as human-readable text.
func (f *HumanFormatter) FormatImages(w io.Writer, result *ImagesResult) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Board %s: %d image(s)\n", result.BoardID, result.Count)
	}
	for _, img := range result.Images {
		if f.Quiet {
			_, _ = fmt.Fprintln(w, img)
		} else {
			_, _ = fmt.Fprintf(w, "  %s\n", img)
		}
	}
	return nil
}

// FormatTheme formats a theme suggestion as human-readable text.
func (f *HumanFormatter) FormatTheme(w io.Writer, result *ThemeResult) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, result.Theme)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Theme: %s (server hour %02d)\n", result.Theme, result.Hour)
	if result.Note != "" {
		_, _ = fmt.Fprintf(w, "Note:  %s\n", result.Note)
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList prints one row per profile. The default is marked with "*".
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  NAME\tENDPOINT\tBOARD")
	for _, p := range profiles {
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, p.Name, p.Endpoint, orServerDefault(p.BoardID))
	}
	return tw.Flush()
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	name := profile.Name
	if isDefault {
		name += " (default)"
	}
	timeout := "(client default)"
	if profile.Timeout > 0 {
		timeout = profile.Timeout.String()
	}
	_, _ = fmt.Fprintf(w, "Name:     %s\nEndpoint: %s\nBoard:    %s\nTimeout:  %s\n",
		name, profile.Endpoint, orServerDefault(profile.BoardID), timeout)
	return nil
}

func orServerDefault(boardID string) string {
	if boardID == "" {
		return "(server default)"
	}
	return boardID
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatHealth formats a health result as JSON.
func (f *JSONFormatter) FormatHealth(w io.Writer, result *HealthResult) error {
	return writeJSON(w, result)
}

// FormatImages formats board images as JSON.
func (f *JSONFormatter) FormatImages(w io.Writer, result *ImagesResult) error {
	return writeJSON(w, result)
}

// FormatTheme formats a theme suggestion as JSON.
func (f *JSONFormatter) FormatTheme(w io.Writer, result *ThemeResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

type jsonProfile struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	BoardID  string `json:"board_id,omitempty"`
	Timeout  string `json:"timeout,omitempty"`
	Default  bool   `json:"default"`
}

func toJSONProfile(p Profile, isDefault bool) jsonProfile {
	jp := jsonProfile{
		Name:     p.Name,
		Endpoint: p.Endpoint,
		BoardID:  p.BoardID,
		Default:  isDefault,
	}
	if p.Timeout > 0 {
		jp.Timeout = p.Timeout.String()
	}
	return jp
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		output.Profiles[i] = toJSONProfile(profiles[i], profiles[i].Name == defaultName)
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	return writeJSON(w, toJSONProfile(profile, isDefault))
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
