package sapling

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type values map[feature.Attribute]bool

func instance(c string, vs values) *dataset.Instance {
	return dataset.NewInstance(vs, feature.Classifier(c))
}

func assertLeaf(t *testing.T, n tree.Node, c feature.Classifier, p float64) {
	t.Helper()
	leaf, ok := n.(*tree.Leaf)
	require.True(t, ok, "expected a leaf, got %v", n)
	assert.Equal(t, c, leaf.Classifier())
	assert.InDelta(t, p, leaf.Probability(), 1e-12)
}

func assertInternal(t *testing.T, n tree.Node, a feature.Attribute) *tree.Internal {
	t.Helper()
	in, ok := n.(*tree.Internal)
	require.True(t, ok, "expected an internal node, got %v", n)
	assert.Equal(t, a, in.Attribute())
	return in
}

func TestBuildTreePureSplit(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", values{"A": true}),
		instance("No", values{"A": false}),
		instance("Yes", values{"A": true}),
	})
	tr, err := BuildTree(s, feature.Attributes("A"))
	require.NoError(t, err)
	root := assertInternal(t, tr.Root(), "A")
	assertLeaf(t, root.TrueChild(), "Yes", 1.0)
	assertLeaf(t, root.FalseChild(), "No", 1.0)

	c, err := tr.Classify(instance("", values{"A": true}))
	require.NoError(t, err)
	assert.Equal(t, feature.Classifier("Yes"), c)
	c, err = tr.Classify(instance("", values{"A": false}))
	require.NoError(t, err)
	assert.Equal(t, feature.Classifier("No"), c)
}

func TestBuildTreeAttributeExhaustion(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", nil),
		instance("Yes", nil),
		instance("No", nil),
	})
	tr, err := BuildTree(s, nil)
	require.NoError(t, err)
	assertLeaf(t, tr.Root(), "Yes", 2.0/3.0)
}

func TestBuildTreeExhaustionUsesLocalMajority(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", values{"A": true}),
		instance("Yes", values{"A": false}),
		instance("Yes", values{"A": false}),
		instance("No", values{"A": true}),
		instance("No", values{"A": true}),
	})
	tr, err := BuildTree(s, feature.Attributes("A"))
	require.NoError(t, err)
	root := assertInternal(t, tr.Root(), "A")
	// the true branch holds Yes, No, No: its own majority, not the global Yes
	assertLeaf(t, root.TrueChild(), "No", 2.0/3.0)
	assertLeaf(t, root.FalseChild(), "Yes", 1.0)
}

func TestBuildTreeEmptyPartitionUsesGlobalBaseline(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("X", values{"B": true, "A": false}),
		instance("Y", values{"B": true, "A": false}),
		instance("Y", values{"B": false, "A": true}),
		instance("Y", values{"B": false, "A": false}),
		instance("Y", values{"B": false, "A": true}),
	})
	tr, err := BuildTree(s, feature.Attributes("B", "A"))
	require.NoError(t, err)
	assert.Equal(t, feature.Classifier("X"), tr.Reference())
	root := assertInternal(t, tr.Root(), "B")
	assertLeaf(t, root.FalseChild(), "Y", 1.0)
	a := assertInternal(t, root.TrueChild(), "A")
	// no instance with B = True has A = True: global baseline of the training set
	assertLeaf(t, a.TrueChild(), "Y", 0.8)
	// exhausted attributes on X, Y: local majority, first encountered wins
	assertLeaf(t, a.FalseChild(), "X", 0.5)

	expected := `B = True:
    A = True:
        Category Y, prob = 80%
    A = False:
        Category X, prob = 50%
B = False:
    Category Y, prob = 100%
`
	assert.Equal(t, expected, tr.String())
}

func TestBuildTreeTieBreaksOnAttributeOrder(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", values{"A": true, "B": true}),
		instance("No", values{"A": false, "B": false}),
		instance("Yes", values{"A": true, "B": true}),
		instance("No", values{"A": false, "B": false}),
	})
	tr, err := BuildTree(s, feature.Attributes("A", "B"))
	require.NoError(t, err)
	assertInternal(t, tr.Root(), "A")
	tr, err = BuildTree(s, feature.Attributes("B", "A"))
	require.NoError(t, err)
	assertInternal(t, tr.Root(), "B")
}

func TestBuildTreeSelectsLowestWeightedImpurity(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", values{"Noise": true, "Signal": true}),
		instance("No", values{"Noise": true, "Signal": false}),
		instance("Yes", values{"Noise": false, "Signal": true}),
		instance("No", values{"Noise": false, "Signal": false}),
	})
	tr, err := BuildTree(s, feature.Attributes("Noise", "Signal"))
	require.NoError(t, err)
	root := assertInternal(t, tr.Root(), "Signal")
	assertLeaf(t, root.TrueChild(), "Yes", 1.0)
	assertLeaf(t, root.FalseChild(), "No", 1.0)
}

func TestBuildTreePureAtRoot(t *testing.T) {
	s := dataset.New([]*dataset.Instance{
		instance("Yes", values{"A": true}),
		instance("Yes", values{"A": false}),
	})
	tr, err := BuildTree(s, feature.Attributes("A"))
	require.NoError(t, err)
	assertLeaf(t, tr.Root(), "Yes", 1.0)
}

func TestBuildTreeErrors(t *testing.T) {
	_, err := BuildTree(dataset.New(nil), feature.Attributes("A"))
	assert.Equal(t, ErrEmptyTrainingSet, err)
	_, err = BuildTree(dataset.New([]*dataset.Instance{instance("Yes", values{"A": true})}), feature.Attributes("A", "B"))
	assert.Error(t, err)
}

func randomDataset(r *rand.Rand, n int, attributes []feature.Attribute, classifiers []string) []*dataset.Instance {
	instances := make([]*dataset.Instance, 0, n)
	for i := 0; i < n; i++ {
		vs := values{}
		for _, a := range attributes {
			vs[a] = r.Intn(2) == 0
		}
		instances = append(instances, instance(classifiers[r.Intn(len(classifiers))], vs))
	}
	return instances
}

func TestBuildTreeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	attributes := feature.Attributes("A", "B", "C", "D", "E")
	for _, sg := range []dataset.Generator{dataset.NewMemoryIntensive, dataset.NewCPUIntensive} {
		for i := 0; i < 50; i++ {
			attrs := attributes[:r.Intn(len(attributes)+1)]
			instances := randomDataset(r, r.Intn(40)+1, attrs, []string{"a", "b", "c"})
			s := sg(instances)
			tr, err := BuildTree(s, attrs)
			require.NoError(t, err)
			assert.LessOrEqual(t, tr.Depth(), len(attrs))

			ref := instances[0].Classifier()
			err = tr.Traverse(false, func(n tree.Node, path []feature.Criterion) error {
				leaf, ok := n.(*tree.Leaf)
				if !ok {
					return nil
				}
				subset := s
				for _, c := range path {
					subset = subset.SubsetWith(c)
				}
				if subset.Count() > 0 && dataset.Impurity(subset, ref) == 0 {
					assert.Equal(t, 1.0, leaf.Probability())
				}
				return nil
			})
			require.NoError(t, err)

			withMemory, err := BuildTree(dataset.NewMemoryIntensive(instances), attrs)
			require.NoError(t, err)
			assert.Equal(t, withMemory.String(), tr.String(), "trees must not depend on the dataset implementation")
		}
	}
}

func TestCrossValidate(t *testing.T) {
	var instances []*dataset.Instance
	for i := 0; i < 20; i++ {
		signal := i%2 == 0
		label := "No"
		if signal {
			label = "Yes"
		}
		instances = append(instances, instance(label, values{"Signal": signal, "Noise": i%3 == 0}))
	}
	e, err := CrossValidate(context.Background(), dataset.New(instances), feature.Attributes("Noise", "Signal"), 4)
	require.NoError(t, err)
	require.Len(t, e.Folds, 4)
	for i, fe := range e.Folds {
		assert.Equal(t, i, fe.Fold)
		assert.Equal(t, 5, fe.TestCount)
		assert.Equal(t, 15, fe.TrainingCount)
		assert.Equal(t, 1.0, fe.TreeAccuracy)
	}
	assert.Equal(t, 1.0, e.TreeAccuracyMean)
	assert.Equal(t, 0.0, e.TreeAccuracyStdDev)
	assert.Less(t, e.BaselineAccuracyMean, 1.0)
}

func TestCrossValidateErrors(t *testing.T) {
	s := dataset.New([]*dataset.Instance{instance("Yes", values{"A": true}), instance("No", values{"A": false})})
	_, err := CrossValidate(context.Background(), s, feature.Attributes("A"), 1)
	assert.Error(t, err)
	_, err = CrossValidate(context.Background(), s, feature.Attributes("A"), 3)
	assert.Error(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CrossValidate(ctx, s, feature.Attributes("A"), 2)
	assert.Error(t, err)
}
