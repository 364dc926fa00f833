package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type crossValidateCmdConfig struct {
	*rootCmdConfig
	datasetConfig
	dataInput string
	folds     int
}

func crossValidateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossValidateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "crossvalidate",
		Short: "Estimate the accuracy of trees grown from a set of data",
		Long:  `Estimate the accuracy of trees grown from a set of data with a k-fold cross-validation, comparing it with always predicting the most frequent class`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s, m, err := config.readDataset(cmd.Context(), config.dataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			log.Debugf("Cross-validating with %d folds on a set with %d instances...", config.folds, s.Count())
			e, err := sapling.CrossValidate(cmd.Context(), s, m.Attributes, config.folds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "cross-validating: %v\n", err)
				os.Exit(3)
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Fold", "Training", "Test", "Depth", "Leaves", "Tree accuracy", "Baseline", "Baseline accuracy"})
			for _, fe := range e.Folds {
				baseline := fe.Tree.Baseline()
				t.AppendRow(table.Row{fe.Fold + 1, fe.TrainingCount, fe.TestCount, fe.Tree.Depth(), fe.Tree.Leaves(), tree.Percentage(fe.TreeAccuracy), baseline.Classifier(), tree.Percentage(fe.BaselineAccuracy)})
			}
			t.AppendFooter(table.Row{"Mean", "", "", "", "", tree.Percentage(e.TreeAccuracyMean), "", tree.Percentage(e.BaselineAccuracyMean)})
			t.AppendFooter(table.Row{"Std. dev.", "", "", "", "", tree.Percentage(e.TreeAccuracyStdDev), "", tree.Percentage(e.BaselineAccuracyStdDev)})
			t.Render()
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to cross-validate on (defaults to STDIN, interpreted as text)")
	cmd.Flags().IntVarP(&(config.folds), "folds", "k", 10, "number of folds to split the data into")
	config.addFlags(cmd)
	return cmd
}

func (cvcc *crossValidateCmdConfig) Validate() error {
	if cvcc.folds < 2 {
		return fmt.Errorf("folds must be at least 2, got %d", cvcc.folds)
	}
	return cvcc.datasetConfig.Validate()
}
