package config

import (
	"flag"
	"fmt"
	"time"
)

// Output formats understood by the settings tool.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options holds the command-line options of the settings tool.
type Options struct {
	// Configuration overrides DJANGO_CONFIGURATION when non-empty.
	Configuration string
	// EnvFile is an optional dotenv file loaded before the environment is read.
	EnvFile string
	// Format is the output format of the resolved mapping.
	Format string
	// Redact masks secrets and URL passwords in the printed mapping.
	Redact bool
	// Check enables the database and redis connectivity probe.
	Check bool
	// Timeout bounds the whole probe.
	Timeout time.Duration
}

// ParseFlags parses the settings tool flags from args.
//
// Flags:
//
//	-configuration profile name (Production, Staging, Development)
//	-e/-env-file dotenv file path
//	-format output format: json or yaml
//	-redact mask secrets; without it SECRET_KEY, tokens and passwords are printed
//	-check ping the database and redis endpoints after resolving
//	-timeout probe timeout (e.g., "5s")
func ParseFlags(name string, args []string) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.Configuration, "configuration", "", "Settings profile name")
	fs.StringVar(&opts.EnvFile, "e", "", "Dotenv file path")
	fs.StringVar(&opts.EnvFile, "env-file", "", "Dotenv file path (alias)")
	fs.StringVar(&opts.Format, "format", FormatJSON, "Output format (json, yaml)")
	fs.BoolVar(&opts.Redact, "redact", false, "Mask secrets and passwords (printed verbatim otherwise)")
	fs.BoolVar(&opts.Check, "check", false, "Ping database and redis endpoints")
	fs.DurationVar(&opts.Timeout, "timeout", 5*time.Second, "Probe timeout (e.g., 5s)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return opts, nil
}
