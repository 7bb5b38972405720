// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/models"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseIDArg extracts a record id from the first positional argument
func (p *FlagParser) ParseIDArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s id is required", cli.ErrInvalidID, what)
	}
	return cli.ParseID(args[0], what)
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: --%s is required", cli.ErrInvalidFlag, flagName)
	}
	return value, nil
}

// ParseRating extracts a star rating flag. An unset flag returns ok=false;
// a set flag must be within the star range.
func (p *FlagParser) ParseRating(flagName string) (rating int, ok bool, err error) {
	if !p.cmd.Flags().Changed(flagName) {
		return 0, false, nil
	}
	rating, err = p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return 0, false, fmt.Errorf("%w: --%s must be between %d and %d, got %d",
			cli.ErrInvalidFlag, flagName, models.MinRating, models.MaxRating, rating)
	}
	return rating, true, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
