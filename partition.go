package sapling

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Partition represents the split of a dataset on an attribute into the
subset of instances with a true value for it and the subset of those
with a false value, along the weighted impurity of the split with
respect to a reference classifier.
*/
type Partition struct {
	Attribute        feature.Attribute
	TrueSet          dataset.Dataset
	FalseSet         dataset.Dataset
	WeightedImpurity float64
}

/*
NewPartition takes a dataset, an attribute and a reference classifier and
returns the partition of the dataset on the attribute.
*/
func NewPartition(s dataset.Dataset, a feature.Attribute, ref feature.Classifier) *Partition {
	trueSet := s.SubsetWith(feature.NewCriterion(a, true))
	falseSet := s.SubsetWith(feature.NewCriterion(a, false))
	tc, fc, count := trueSet.Count(), falseSet.Count(), s.Count()
	if tc+fc != count {
		panic(fmt.Sprintf("partitioning on %s: %d + %d instances from a dataset of %d", a, tc, fc, count))
	}
	return &Partition{a, trueSet, falseSet, dataset.WeightedImpurity(trueSet, falseSet, ref)}
}

/*
selectPartition takes a dataset, a non-empty slice of attributes and a
reference classifier and returns the partition on the attribute with
the lowest weighted impurity. On ties the attribute coming first in the
slice is selected.
*/
func selectPartition(s dataset.Dataset, attributes []feature.Attribute, ref feature.Classifier) *Partition {
	var best *Partition
	for _, a := range attributes {
		best = betterPartition(best, NewPartition(s, a, ref))
	}
	return best
}

// betterPartition returns candidate only if it is strictly better than best.
func betterPartition(best, candidate *Partition) *Partition {
	if best == nil || candidate.WeightedImpurity < best.WeightedImpurity {
		return candidate
	}
	return best
}
