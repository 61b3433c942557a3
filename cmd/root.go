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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rotblauer/trajmix/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trajmix",
	Short: "Combine vehicle trajectory files into conflict-free scenes",
	Long: `trajmix merges trajectory files from several data groups into
synthetic multi-vehicle scenes. Vehicles whose footprints overlap at a shared
timestamp are resolved by dropping the shorter-lived one.

Stages:

  combine   Merge one pick per group, resolve overlaps, write one scene per combination.
  crop      Cut each scene into per-subject sub-scenes.
  collect   Copy sub-scenes meeting duration and count minimums into one directory.
  run       All of the above, in order.

Every flag can also be set in the config file (default $HOME/.trajmix.yaml)
under its stage, eg. combine.groups, or from the environment as TRAJMIX_COMBINE_GROUPS.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trajmix.yaml)")
	pFlags.String("log-level", "info", "Log level (debug, info, warn, error)")
	if err := viper.BindPFlag("log-level", pFlags.Lookup("log-level")); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".trajmix")
	}

	viper.SetEnvPrefix("trajmix")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		slog.Warn("Invalid log level, using info", "error", err)
		level = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(level)
	slog.Debug("Command", "name", cmd.Name(), "args", args)
}

// interruptContext is canceled on the first interrupt signal.
// A second signal exits immediately.
func interruptContext() (context.Context, context.CancelFunc) {
	return common.InterruptContext(context.Background(), func() {
		log.Fatalln("Force exit")
	})
}

// bindStage binds the named flags of fs to "<stage>.<key>" config keys.
// Flag names are the key with prefix prepended.
func bindStage(fs *pflag.FlagSet, stage, prefix string, keys ...string) error {
	for _, k := range keys {
		f := fs.Lookup(prefix + k)
		if f == nil {
			return fmt.Errorf("no flag %s%s", prefix, k)
		}
		if err := viper.BindPFlag(stage+"."+k, f); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func setInt(dst *int, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func setInt64(dst *int64, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetInt64(key)
	}
}

func setFloat64(dst *float64, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetFloat64(key)
	}
}

func setBool(dst *bool, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetBool(key)
	}
}
