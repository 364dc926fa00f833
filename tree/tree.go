package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

// Tree represents a decision tree on boolean attributes. It is composed
// of its root node, the attributes it was grown from, the reference
// classifier used to measure impurity while growing it, and the baseline
// prediction of its whole training set.
type Tree struct {
	root       Node
	attributes []feature.Attribute
	reference  feature.Classifier
	baseline   *Prediction
}

/*
ErrCannotTestOnEmptySet is the error returned when trying to test a tree
against a dataset with no instances.
*/
const ErrCannotTestOnEmptySet = PredictionError("cannot test tree on empty dataset")

// New takes the root node, the attributes the tree was grown from, the
// reference classifier and the baseline prediction for the training set
// and returns a tree holding them.
func New(root Node, attributes []feature.Attribute, reference feature.Classifier, baseline *Prediction) *Tree {
	if root == nil {
		panic("tree without root node")
	}
	attrs := make([]feature.Attribute, len(attributes))
	copy(attrs, attributes)
	return &Tree{root, attrs, reference, baseline}
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return t.root
}

// Attributes returns the attributes the tree was grown from.
func (t *Tree) Attributes() []feature.Attribute {
	attrs := make([]feature.Attribute, len(t.attributes))
	copy(attrs, t.attributes)
	return attrs
}

// Reference returns the reference classifier the tree was grown with.
func (t *Tree) Reference() feature.Classifier {
	return t.reference
}

// Baseline returns the baseline prediction of the tree's training set.
func (t *Tree) Baseline() *Prediction {
	return t.baseline
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made.
func (t *Tree) Predict(s feature.Sample) (*Prediction, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	return Predict(t.root, s)
}

// Classify takes a sample and returns the classifier the tree predicts for it
// and an error if the prediction could not be made.
func (t *Tree) Classify(s feature.Sample) (feature.Classifier, error) {
	if t == nil {
		return "", fmt.Errorf("nil tree cannot classify samples")
	}
	return Classify(t.root, s)
}

/*
Test takes a dataset and returns the fraction of its instances for which the
tree predicts their label, or an error if the dataset is empty or a prediction
could not be made.
*/
func (t *Tree) Test(s dataset.Dataset) (float64, error) {
	instances := s.Instances()
	if len(instances) == 0 {
		return 0.0, ErrCannotTestOnEmptySet
	}
	var hits int
	for _, instance := range instances {
		c, err := t.Classify(instance)
		if err != nil {
			return 0.0, fmt.Errorf("testing tree on %v: %v", instance, err)
		}
		if c == instance.Classifier() {
			hits++
		}
	}
	return float64(hits) / float64(len(instances)), nil
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and the criteria leading to it from the root as parameters,
// and goes through the tree running the function with every traversed node.
// Traverse will call the function with a parent node before calling it
// for its children if bottomup is false, and call it after its children
// if bottomup is true. True children are visited before false children.
// If the call to the function returns an error, the traversing is aborted
// and the error is returned. Otherwise, when the traversing is over, nil
// is returned.
func (t *Tree) Traverse(bottomup bool, f func(Node, []feature.Criterion) error) error {
	return traverse(t.root, nil, bottomup, f)
}

func traverse(n Node, path []feature.Criterion, bottomup bool, f func(Node, []feature.Criterion) error) error {
	var err error
	if !bottomup {
		err = f(n, path)
	}
	if err != nil {
		return err
	}
	if in, ok := n.(*Internal); ok {
		for _, v := range []bool{true, false} {
			stPath := make([]feature.Criterion, len(path), len(path)+1)
			copy(stPath, path)
			stPath = append(stPath, feature.NewCriterion(in.attribute, v))
			err = traverse(in.Child(v), stPath, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(n, path)
	}
	return err
}

// Depth returns the number of internal nodes on the longest path from the
// root of the tree to a leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(false, func(n Node, path []feature.Criterion) error {
		if _, ok := n.(*Leaf); ok && len(path) > depth {
			depth = len(path)
		}
		return nil
	})
	return depth
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var count int
	t.Traverse(false, func(n Node, _ []feature.Criterion) error {
		if _, ok := n.(*Leaf); ok {
			count++
		}
		return nil
	})
	return count
}

func (t *Tree) String() string {
	return Report(t.root)
}
