// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/download-manager/internal/extract"
	"github.com/pdiddy/download-manager/internal/profile"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Rebuild keyword profiles from seed documents",
	Long: `Populate extracts the text of each category's seed document, ranks its
words by frequency, and overwrites the category's keyword profile with the
top-ranked words. Categories without a seed document are skipped.`,
	Args: cobra.NoArgs,
	RunE: runPopulate,
}

func init() {
	rootCmd.AddCommand(populateCmd)
}

func runPopulate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	ex := extract.New(e.fs, e.cfg.Extract)
	builder := profile.NewBuilder(e.fs, ex, e.cfg.Keywords)

	result := builder.BuildAll(e.cfg.Categories, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d profile(s) failed to build", result.Failed)
	}
	return nil
}
