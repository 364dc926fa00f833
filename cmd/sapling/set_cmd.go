package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	datasetConfig
	setInput  string
	setOutput string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Copy sets of data between any of the supported formats and backends`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s, m, err := config.readDataset(cmd.Context(), config.setInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			log.Debugf("Writing %d instances...", s.Count())
			err = config.writeDataset(cmd.Context(), config.setOutput, s, m)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing set: %v\n", err)
				os.Exit(3)
			}
			log.Debugf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.setInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with the data to copy (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(config.setOutput), "output", "o", "", "path to an output text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL to copy the data to (defaults to STDOUT, written as text)")
	config.addFlags(cmd)
	return cmd
}
