package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	datasetConfig
	dataInput string
	testInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree from a training data set and test its accuracy against a test data set, comparing it with always predicting the most frequent class`,
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
			testingSet, _, err := config.readDataset(cmd.Context(), config.testInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = dataset.Validate(testingSet, m.Attributes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing set does not match training set attributes: %v\n", err)
				os.Exit(4)
			}
			log.Debugf("Growing tree from a set with %d instances and %d attributes...", trainingSet.Count(), len(m.Attributes))
			t, err := sapling.BuildTree(trainingSet, m.Attributes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			log.Debugf("Testing tree against testset with %d instances...", testingSet.Count())
			accuracy, err := t.Test(testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(6)
			}
			baseline, err := tree.NewPredictionFromSet(testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "computing baseline: %v\n", err)
				os.Exit(7)
			}
			fmt.Println("Accuracy:")
			fmt.Printf("Decision tree accuracy: %s\n", tree.Percentage(accuracy))
			fmt.Printf("Baseline accuracy (%s): %s\n", baseline.Classifier(), tree.Percentage(baseline.Probability()))
			fmt.Println()
			fmt.Print(t)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to use to grow the tree (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(config.testInput), "test", "t", "", "path to a text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to test the tree against (required)")
	config.addFlags(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.testInput == "" {
		return fmt.Errorf("required test flag was not set")
	}
	return tcc.datasetConfig.Validate()
}
