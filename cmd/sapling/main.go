package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := cliParser().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow binary decision trees",
		Long:  `A tool to grow decision trees on boolean attributes from your data, test them, and use them to classify samples`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := config.loadConfiguration(cmd)
			if err != nil {
				return err
			}
			setupLogging(viper.GetBool("verbose"))
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress messages onto STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for flags, keyed by flag name")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), crossValidateCmd(config), setCmd(config))
	return rootCmd
}

/*
loadConfiguration binds the flags of the command to be run to viper,
so their values can be provided by a configuration file or SAPLING_
prefixed environment variables, and sets on the flags any value
that was not given on the command line.
*/
func (rcc *rootCmdConfig) loadConfiguration(cmd *cobra.Command) error {
	viper.SetEnvPrefix("sapling")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if rcc.configFile != "" {
		viper.SetConfigFile(rcc.configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !viper.IsSet(f.Name) {
			return
		}
		err = cmd.Flags().Set(f.Name, viper.GetString(f.Name))
	})
	return err
}
