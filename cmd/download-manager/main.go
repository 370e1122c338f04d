// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the download-manager CLI.
// Verbs: setup, populate, run, config, version.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/download-manager/internal/config"
	"github.com/pdiddy/download-manager/internal/logging"
	"github.com/pdiddy/download-manager/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the download-manager CLI.
var rootCmd = &cobra.Command{
	Use:   "download-manager",
	Short: "Sort downloaded files into topic folders",
	Long: `download-manager moves files out of a downloads folder. PDFs are
classified by comparing their text with per-category keyword profiles;
archives and pictures are sorted by extension.

Run "setup" once to create the destination folders, "populate" to build
keyword profiles from each category's seed document, and "run" to sort
the source folder.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./download-manager.yaml or ~/.config/download-manager/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	} else if !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("download-manager")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "download-manager"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

// env bundles what every command needs: the validated configuration, the
// filesystem, and the diagnostic logger. It is built once per invocation
// and passed down explicitly.
type env struct {
	cfg types.Config
	fs  afero.Fs
	log *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return &env{
		cfg: cfg,
		fs:  afero.NewOsFs(),
		log: logging.New(cmd.ErrOrStderr(), cfg.Log),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
