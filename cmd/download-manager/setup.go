// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/download-manager/internal/arrange"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create every destination folder",
	Long: `Setup creates the category folders, the archive and pictures folders,
and the folders that hold keyword profiles. Existing folders are left
untouched, so setup can be run any number of times.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	return arrange.Setup(e.fs, e.cfg, cmd.OutOrStdout())
}
