// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/download-manager/internal/arrange"
	"github.com/pdiddy/download-manager/internal/classify"
	"github.com/pdiddy/download-manager/internal/extract"
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Sort every file in the source folder",
	Long: `Run scans the source folder (without descending into sub-folders) and
routes each file: PDFs go to the most similar category when its score
reaches the threshold, archives and pictures go to their fixed folders,
and everything else stays where it is.

Pass file paths to route just those files instead of scanning. A file
that fails is reported and the remaining files are still processed.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("source", "", "folder to scan (default: source_dir from config)")
	runCmd.Flags().Bool("dry-run", false, "report decisions without moving files")
	_ = viper.BindPFlag("source_dir", runCmd.Flags().Lookup("source"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ex := extract.New(e.fs, e.cfg.Extract)
	cls := classify.New(e.fs, ex, e.cfg, e.log)
	router := arrange.NewRouter(e.fs, e.cfg, cls, e.log, arrange.Options{DryRun: dryRun})
	orch := arrange.NewOrchestrator(e.fs, router, e.log)

	out := cmd.OutOrStdout()
	var result arrange.BatchResult
	if len(args) > 0 {
		result = orch.RouteFiles(args, out)
	} else {
		result, err = orch.Run(e.cfg.SourceDir, out)
		if err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed routing", result.Failed)
	}
	return nil
}
