package sapling

import (
	"context"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

/*
FoldEvaluation holds the results of growing a tree on the training
instances of a fold and testing it against the fold's test instances.
BaselineAccuracy is the accuracy on the test instances of always
predicting the most frequent classifier of the training instances.
*/
type FoldEvaluation struct {
	Fold             int
	TrainingCount    int
	TestCount        int
	Tree             *tree.Tree
	TreeAccuracy     float64
	BaselineAccuracy float64
}

/*
Evaluation holds the results of a cross-validation: the evaluation
of every fold and the mean and standard deviation of the tree and
baseline accuracies across folds.
*/
type Evaluation struct {
	Folds                  []*FoldEvaluation
	TreeAccuracyMean       float64
	TreeAccuracyStdDev     float64
	BaselineAccuracyMean   float64
	BaselineAccuracyStdDev float64
}

/*
CrossValidate takes a context, a dataset, a slice of attributes and a
number of folds k, and performs a k-fold cross-validation: instance i
of the dataset is assigned to fold i mod k, and for every fold a tree is
grown with BuildTree from the instances in the rest of the folds and tested
against the instances in it.

Folds are processed concurrently. An error is returned if k is lower than 2
or greater than the number of instances, if growing or testing a tree fails,
or if the context is cancelled before all folds are processed.
*/
func CrossValidate(ctx context.Context, s dataset.Dataset, attributes []feature.Attribute, k int) (*Evaluation, error) {
	instances := s.Instances()
	if k < 2 {
		return nil, errors.Errorf("cross-validation needs at least 2 folds, got %d", k)
	}
	if k > len(instances) {
		return nil, errors.Errorf("cannot split %d instances into %d folds", len(instances), k)
	}
	folds := make([]*FoldEvaluation, k)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < k; i++ {
		fold := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fe, err := evaluateFold(instances, attributes, fold, k)
			if err != nil {
				return errors.Wrapf(err, "fold %d", fold)
			}
			folds[fold] = fe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return newEvaluation(folds), nil
}

func evaluateFold(instances []*dataset.Instance, attributes []feature.Attribute, fold, k int) (*FoldEvaluation, error) {
	var training, test []*dataset.Instance
	for i, instance := range instances {
		if i%k == fold {
			test = append(test, instance)
		} else {
			training = append(training, instance)
		}
	}
	trainingSet := dataset.New(training)
	testSet := dataset.New(test)
	t, err := BuildTree(trainingSet, attributes)
	if err != nil {
		return nil, err
	}
	treeAccuracy, err := t.Test(testSet)
	if err != nil {
		return nil, err
	}
	baselineAccuracy, err := t.Baseline().Accuracy(testSet)
	if err != nil {
		return nil, err
	}
	return &FoldEvaluation{
		Fold:             fold,
		TrainingCount:    len(training),
		TestCount:        len(test),
		Tree:             t,
		TreeAccuracy:     treeAccuracy,
		BaselineAccuracy: baselineAccuracy,
	}, nil
}

func newEvaluation(folds []*FoldEvaluation) *Evaluation {
	treeAccuracies := make([]float64, 0, len(folds))
	baselineAccuracies := make([]float64, 0, len(folds))
	for _, fe := range folds {
		treeAccuracies = append(treeAccuracies, fe.TreeAccuracy)
		baselineAccuracies = append(baselineAccuracies, fe.BaselineAccuracy)
	}
	e := &Evaluation{Folds: folds}
	e.TreeAccuracyMean, e.TreeAccuracyStdDev = stat.MeanStdDev(treeAccuracies, nil)
	e.BaselineAccuracyMean, e.BaselineAccuracyStdDev = stat.MeanStdDev(baselineAccuracies, nil)
	return e
}
