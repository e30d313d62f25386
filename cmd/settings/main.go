// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"github.com/carbondoomsday/carbondoomsday/internal/logger"
	"github.com/carbondoomsday/carbondoomsday/internal/probe"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultEnvFile = ".env"

func main() {
	printBuildInfo()

	log := logger.NewLogger("carbondoomsday-settings")

	opts, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing flags")
	}

	if err = loadEnvFile(opts.EnvFile); err != nil {
		log.Fatal().Err(err).Str("file", opts.EnvFile).Msg("error loading env file")
	}

	settings, err := config.Setup(opts.Configuration)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving settings")
	}

	log.Debug().Object("settings", settings).Msg("resolved settings")

	mapping, err := settings.Mapping()
	if err != nil {
		log.Fatal().Err(err).Msg("error building settings mapping")
	}

	if opts.Redact {
		redact(mapping)
	}

	if err = render(os.Stdout, mapping, opts.Format); err != nil {
		log.Fatal().Err(err).Msg("error writing settings")
	}

	if !opts.Check {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	results := probe.NewProber(log).Check(ctx, settings)
	if probe.Failed(results) {
		cancel()
		log.Error().Msg("settings point at unreachable services")
		os.Exit(1)
	}
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. An empty path loads .env when it exists.
func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}

	err := godotenv.Load(defaultEnvFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}
