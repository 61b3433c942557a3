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

var cropKeys = []string{"in", "out", "min-vehicles", "min-duration", "digits", "ext"}

// chainedCropKeys are the crop keys left once run wires crop to combine.
var chainedCropKeys = []string{"out", "min-vehicles", "min-duration"}

func addCropFlags(fs *pflag.FlagSet, prefix string, chained bool) {
	d := params.DefaultCropConfig()
	if !chained {
		fs.String(prefix+"in", d.InputDir, "Directory of merged scenes")
		fs.Int(prefix+"digits", d.Eligibility.Digits, "Leading digits required of eligible file names")
		fs.String(prefix+"ext", d.Eligibility.Extension, "Extension of eligible file names")
	}
	fs.String(prefix+"out", d.OutputDir, "Directory for cropped sub-scenes")
	fs.Int(prefix+"min-vehicles", d.MinVehicles, "Sub-scenes need more vehicles than this")
	fs.Int64(prefix+"min-duration", d.MinDuration, "Subject span must be longer than this")
}

func cropConfig() *params.CropConfig {
	c := params.DefaultCropConfig()
	setString(&c.InputDir, "crop.in")
	setString(&c.OutputDir, "crop.out")
	setInt(&c.MinVehicles, "crop.min-vehicles")
	setInt64(&c.MinDuration, "crop.min-duration")
	setInt(&c.Eligibility.Digits, "crop.digits")
	setString(&c.Eligibility.Extension, "crop.ext")
	return c
}

// cropCmd represents the crop command
var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Cut merged scenes into per-subject sub-scenes",
	Long: `For each scene and each of its vehicles as subject, keep the vehicles whose
time span covers the subject's. Sub-scenes with more than --min-vehicles vehicles
and a subject span longer than --min-duration are written to
<out>/<scene>/<duration>_<count><ext>, subject first.
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindStage(cmd.Flags(), "crop", "", cropKeys...)
	},
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		if _, err := api.Crop(ctx, cropConfig()); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cropCmd)
	addCropFlags(cropCmd.Flags(), "", false)
}
