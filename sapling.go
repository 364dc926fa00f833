/*
Package sapling grows decision trees on boolean attributes from labeled
instances.

Trees are grown recursively. At every step the instances are split on the
remaining attribute that separates them best, measured as the weighted
impurity of the two resulting subsets with respect to a reference
classifier: the label of the first training instance. Growing stops with a
leaf when the instances are pure with respect to the reference classifier,
when no attributes remain, or when a split leaves no instances on a branch.
*/
package sapling

import (
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
)

/*
ErrEmptyTrainingSet is returned when trying to grow a tree from a dataset
without instances.
*/
var ErrEmptyTrainingSet = errors.New("cannot grow a tree from an empty training set")

type grower struct {
	reference feature.Classifier
	baseline  *tree.Prediction
}

/*
BuildTree takes a dataset and an ordered slice of attributes and grows a
tree that predicts the classifier of instances from their values for the
attributes.

Every instance in the dataset must have a value for every attribute. An
error is returned if the dataset is empty or an instance lacks a value.

Two different fallbacks are used when growing. A branch that ends up with
no training instances becomes a leaf with the baseline prediction of the
whole training set, while a branch that runs out of attributes to split on
becomes a leaf with the baseline prediction of its own instances.
*/
func BuildTree(s dataset.Dataset, attributes []feature.Attribute) (*tree.Tree, error) {
	instances := s.Instances()
	if len(instances) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	err := dataset.Validate(s, attributes)
	if err != nil {
		return nil, errors.Wrap(err, "growing tree")
	}
	baseline, err := tree.NewPredictionFromSet(s)
	if err != nil {
		return nil, errors.Wrap(err, "growing tree")
	}
	g := &grower{reference: instances[0].Classifier(), baseline: baseline}
	root := g.grow(s, attributes)
	return tree.New(root, attributes, g.reference, baseline), nil
}

func (g *grower) grow(s dataset.Dataset, attributes []feature.Attribute) tree.Node {
	if s.Count() == 0 {
		return tree.NewLeaf(g.baseline)
	}
	if dataset.Impurity(s, g.reference) == 0 {
		return tree.NewLeaf(tree.NewPrediction(s.Instances()[0].Classifier(), 1.0, s.Count()))
	}
	if len(attributes) == 0 {
		p, err := tree.NewPredictionFromSet(s)
		if err != nil {
			panic(err)
		}
		return tree.NewLeaf(p)
	}
	p := selectPartition(s, attributes, g.reference)
	stAttributes := feature.Without(attributes, p.Attribute)
	return tree.NewInternal(p.Attribute, g.grow(p.TrueSet, stAttributes), g.grow(p.FalseSet, stAttributes))
}
