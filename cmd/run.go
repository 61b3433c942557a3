/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log"
	"log/slog"

	"github.com/rotblauer/trajmix/api"
	"github.com/rotblauer/trajmix/params"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run combine, crop and collect in order",
	Long: `Run all stages, each reading the previous stage's output directory.
Combine flags are unprefixed, crop and collect flags carry a crop- or collect- prefix.

Examples:

  trajmix run --data ./data --groups 5 --crop-min-vehicles 5 --collect-min-count 10
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()
		if err := bindStage(fs, "combine", "", combineKeys...); err != nil {
			return err
		}
		if err := bindStage(fs, "crop", "crop-", chainedCropKeys...); err != nil {
			return err
		}
		return bindStage(fs, "collect", "collect-", chainedCollectKeys...)
	},
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		config := &params.RunConfig{
			Combine: combineConfig(),
			Crop:    cropConfig(),
			Collect: collectConfig(),
		}
		res, err := api.Run(ctx, config)
		if err != nil {
			log.Fatalln(err)
		}
		if res.Collect != nil {
			slog.Info("Run done", "scenes", res.Combine.Combinations, "collected", res.Collect.Matched)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	fs := runCmd.Flags()
	addCombineFlags(fs, "")
	addCropFlags(fs, "crop-", true)
	addCollectFlags(fs, "collect-", true)
}
