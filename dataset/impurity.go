package dataset

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
)

/*
Impurity takes a dataset and a reference classifier and returns how mixed
the dataset is with respect to that classifier: with n being the number
of instances labeled with the reference classifier and m the number of
the rest, the result is n·m/(n+m)², a value in [0, 0.25] that is 0 only
when every instance agrees on matching the reference or not. An empty
dataset has an impurity of 0.

Only matching the reference classifier or not is considered, even if
the dataset holds instances with more than two distinct labels. Trees
grown with this measure depend on it: replacing it with a multi-class
impurity measure changes which attributes are selected.
*/
func Impurity(s Dataset, ref feature.Classifier) float64 {
	var n, m int
	for _, cc := range s.CountClassifiers() {
		if cc.Classifier == ref {
			n += cc.Count
		} else {
			m += cc.Count
		}
	}
	if count := s.Count(); n+m != count {
		panic(fmt.Sprintf("impurity: classifier counts add up to %d for a dataset of %d instances", n+m, count))
	}
	return impurity(n, m)
}

/*
WeightedImpurity takes the two datasets a dataset is split into and a
reference classifier and returns the sum of their impurities weighted
by their relative size. Lower values mean a better separation. Two
empty datasets have a weighted impurity of 0.
*/
func WeightedImpurity(trueSet, falseSet Dataset, ref feature.Classifier) float64 {
	trueCount := trueSet.Count()
	falseCount := falseSet.Count()
	total := float64(trueCount + falseCount)
	if total == 0 {
		return 0
	}
	return float64(trueCount)/total*Impurity(trueSet, ref) + float64(falseCount)/total*Impurity(falseSet, ref)
}

func impurity(n, m int) float64 {
	total := n + m
	if total == 0 {
		return 0
	}
	result := float64(n*m) / float64(total*total)
	if result < 0 || result > 0.25 {
		panic(fmt.Sprintf("impurity: %v out of range for %d matching and %d non-matching instances", result, n, m))
	}
	return result
}
