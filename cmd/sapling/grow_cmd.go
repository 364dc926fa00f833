package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/dot"
	"github.com/pbanos/sapling/tree/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	datasetConfig
	dataInput string
	output    string
	format    string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to classify instances by their boolean attributes.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			trainingSet, m, err := config.readDataset(cmd.Context(), config.dataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			log.Debugf("Growing tree from a set with %d instances and %d attributes...", trainingSet.Count(), len(m.Attributes))
			t, err := sapling.BuildTree(trainingSet, m.Attributes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(3)
			}
			log.Debugf("Done: grew a tree with depth %d and %d leaves", t.Depth(), t.Leaves())
			err = outputTree(config.output, config.format, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to use to grow the tree (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.format), "format", "f", "text", "format to write the tree in: text, json or dot")
	config.addFlags(cmd)
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	switch gcc.format {
	case "text", "json", "dot":
	default:
		return fmt.Errorf("unknown format %s, valid formats are text, json and dot", gcc.format)
	}
	return gcc.datasetConfig.Validate()
}

func outputTree(outputPath, format string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return writeTree(f, format, t)
}

func writeTree(w io.Writer, format string, t *tree.Tree) error {
	switch format {
	case "json":
		return json.WriteJSONTree(w, t)
	case "dot":
		return dot.WriteDOTTree(w, t)
	}
	return tree.WriteReport(w, t.Root())
}
