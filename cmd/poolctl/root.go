package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Exercise and inspect fixed-size block pools",
	Long: `poolctl constructs fixed-size block pools and exercises them: bounded
allocate/write/release walkthroughs and concurrent stress runs. It exists to
demonstrate the pool package; all allocation behavior lives in the library.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON marshals v and writes it to stdout
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// titleStyle returns the style used for section headers, honoring --no-color.
func titleStyle() lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true)
}

// labelStyle returns the style used for field labels, honoring --no-color.
func labelStyle() lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle().Width(16)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Width(16)
}

// printField prints one "label: value" line with styling.
func printField(label string, format string, args ...interface{}) {
	if quiet {
		return
	}
	value := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stdout, "  %s %s\n", labelStyle().Render(label+":"), value)
}

// printTitle prints a styled section header.
func printTitle(title string) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stdout, "\n%s\n", titleStyle().Render(title))
}
