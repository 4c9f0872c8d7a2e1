/*
Copyright © 2026 the relabel authors.
This file is part of relabel.

relabel is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

relabel is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with relabel.  If not, see <http://www.gnu.org/licenses/>.
*/

package relabelutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swothydro/relabel"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the converter.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputDir",
			usage: `
              InputDir is the directory holding the per-reach NetCDF files
              to be converted.`,
			shorthand:  "i",
			defaultVal: "input",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), truncatedCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory the converted files are written to.
              It is created if it does not exist.`,
			shorthand:  "o",
			defaultVal: "output",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), truncatedCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RELABEL")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(truncatedCmd)
}

// outChan returns a channel printing to standard output.
func outChan() chan string {
	outChan := make(chan string)
	go func() {
		for {
			msg := <-outChan
			fmt.Print(msg)
		}
	}()
	return outChan
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("relabel: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "relabel",
	Short: "Convert river hydrology files to the SWOT discharge schema.",
	Long: `relabel converts per-reach river hydrology NetCDF files to the variable
schema used by the SWOT discharge algorithms.
Use the subcommands specified below to access the converter functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RELABEL_var' where 'var' is the
name of the variable to be set. Directory variables are additionally allowed to
contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of relabel.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("relabel v%s\n", relabel.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Convert every file in the input directory.",
	Long: `run converts every NetCDF file in the input directory to the discharge
schema, writing one output file per input file to the output directory.
Files that cannot be converted are logged and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outChan := outChan()
		return RelabelAll(
			os.ExpandEnv(Cfg.GetString("InputDir")),
			os.ExpandEnv(Cfg.GetString("OutputDir")),
			false,
			outChan,
		)
	},
	DisableAutoGenTag: true,
}

var truncatedCmd = &cobra.Command{
	Use:   "truncated",
	Short: "Convert every file, truncated for test data.",
	Long: `truncated converts every NetCDF file in the input directory the same way
run does, except that every output variable is clamped to the first 10 time
steps and the first 5 entries along every other dimension. The small files
it produces are useful as test data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outChan := outChan()
		return RelabelAll(
			os.ExpandEnv(Cfg.GetString("InputDir")),
			os.ExpandEnv(Cfg.GetString("OutputDir")),
			true,
			outChan,
		)
	},
	DisableAutoGenTag: true,
}
