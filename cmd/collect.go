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

	"github.com/rotblauer/trajmix/api"
	"github.com/rotblauer/trajmix/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var collectKeys = []string{"in", "out", "min-duration", "min-count", "ext"}

var chainedCollectKeys = []string{"out", "min-duration", "min-count"}

func addCollectFlags(fs *pflag.FlagSet, prefix string, chained bool) {
	d := params.DefaultCollectConfig()
	if !chained {
		fs.String(prefix+"in", d.InputDir, "Directory tree of cropped sub-scenes")
		fs.String(prefix+"ext", d.Extension, "Extension of sub-scene files")
	}
	fs.String(prefix+"out", d.OutputDir, "Directory for collected sub-scenes")
	fs.Int64(prefix+"min-duration", d.MinDuration, "Minimum sub-scene duration, inclusive")
	fs.Int(prefix+"min-count", d.MinCount, "Minimum sub-scene vehicle count, inclusive")
}

func collectConfig() *params.CollectConfig {
	c := params.DefaultCollectConfig()
	setString(&c.InputDir, "collect.in")
	setString(&c.OutputDir, "collect.out")
	setInt64(&c.MinDuration, "collect.min-duration")
	setInt(&c.MinCount, "collect.min-count")
	setString(&c.Extension, "collect.ext")
	return c
}

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Copy qualifying sub-scenes into one directory",
	Long: `Walk the input tree for files named <duration>_<count><ext> and copy those
meeting both --min-duration and --min-count to <out>/<parent>_<name>.
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindStage(cmd.Flags(), "collect", "", collectKeys...)
	},
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		if _, err := api.Collect(ctx, collectConfig()); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	addCollectFlags(collectCmd.Flags(), "", false)
}
