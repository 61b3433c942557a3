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

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/trajmix/api"
	"github.com/rotblauer/trajmix/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var combineKeys = []string{
	"data", "out", "groups", "pick",
	"car-length", "car-width",
	"digits", "ext", "cache", "dry-run",
}

func addCombineFlags(fs *pflag.FlagSet, prefix string) {
	d := params.DefaultCombineConfig()
	fs.String(prefix+"data", d.DataDir, "Directory of source trajectory files")
	fs.String(prefix+"out", d.OutputDir, "Directory for merged scenes")
	fs.Int(prefix+"groups", d.GroupNum, "Number of groups to partition the catalogue into")
	fs.Int(prefix+"pick", d.PickPerGroup, "Files picked from each group per combination")
	fs.Float64(prefix+"car-length", d.Vehicle.Length, "Vehicle footprint length")
	fs.Float64(prefix+"car-width", d.Vehicle.Width, "Vehicle footprint width")
	fs.Int(prefix+"digits", d.Eligibility.Digits, "Leading digits required of eligible file names")
	fs.String(prefix+"ext", d.Eligibility.Extension, "Extension of eligible file names")
	fs.Int(prefix+"cache", d.Cache.Files, "Decoded source files kept in memory, 0 disables")
	fs.Bool(prefix+"dry-run", d.DryRun, "Only count combinations")
}

func combineConfig() *params.CombineConfig {
	c := params.DefaultCombineConfig()
	setString(&c.DataDir, "combine.data")
	setString(&c.OutputDir, "combine.out")
	setInt(&c.GroupNum, "combine.groups")
	setInt(&c.PickPerGroup, "combine.pick")
	setFloat64(&c.Vehicle.Length, "combine.car-length")
	setFloat64(&c.Vehicle.Width, "combine.car-width")
	setInt(&c.Eligibility.Digits, "combine.digits")
	setString(&c.Eligibility.Extension, "combine.ext")
	setInt(&c.Cache.Files, "combine.cache")
	setBool(&c.DryRun, "combine.dry-run")
	return c
}

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge group combinations into conflict-free scenes",
	Long: `Catalogue the data directory, sort files by vehicle count, partition them
into --groups contiguous groups and merge every combination of --pick files per
group into one scene. At each timestamp, vehicles with overlapping oriented
footprints are resolved by removing the one with fewer frames.

Scenes are written to <out>/<prefix>-<prefix>...<ext>, where each prefix is the
first six characters of a source file name.

Examples:

  trajmix combine --data ./data --groups 5 --pick 1
  trajmix combine --groups 3 --pick 2 --dry-run
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindStage(cmd.Flags(), "combine", "", combineKeys...)
	},
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		res, err := api.Combine(ctx, combineConfig())
		if err != nil {
			log.Fatalln(err)
		}
		slog.Info("Combine summary",
			"total", humanize.BigComma(res.Total),
			"combinations", humanize.Comma(int64(res.Combinations)),
			"original", res.Original,
			"removed", res.Removed,
			"kept", res.Kept)
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
	addCombineFlags(combineCmd.Flags(), "")
}
