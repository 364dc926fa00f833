package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset/inputsample"
	"github.com/pbanos/sapling/feature"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	datasetConfig
	dataInput string
}

type stdoutValueRequester struct{}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a class for a sample answering questions",
		Long:  `Grow a tree from a set of data and use it to predict the class of a sample answering a reduced set of questions about its attributes`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.dataInput == "" {
				fmt.Fprintln(os.Stderr, "required input flag was not set: STDIN is used to answer questions")
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
			sample := inputsample.New(os.Stdin, m.Attributes, stdoutValueRequester{})
			prediction, err := t.Predict(sample)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Printf("Predicted class along its probability is %v\n", prediction)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to use to grow the tree (required)")
	config.addFlags(cmd)
	return cmd
}

func (stdoutValueRequester) RequestValueFor(a feature.Attribute) error {
	fmt.Printf("Is %s true for the sample?\n(valid values are true or false)\n", a)
	return nil
}

func (stdoutValueRequester) RejectValueFor(a feature.Attribute, value string) error {
	fmt.Printf("%q is not a valid value for the sample's %s. Please provide true or false.\n", value, a)
	return nil
}
