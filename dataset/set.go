package dataset

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
)

const (
	instanceCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents an ordered collection of instances.

Its Count method returns the number of instances in it.

Its Instances method returns the instances it contains, in their original
order.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains instances that satisfy it, keeping their relative order.

Its CountClassifiers method returns how many instances are labeled with each
classifier, in the order the classifiers are first encountered.

Its Criteria method returns the criteria applied to obtain the dataset
from the one originally built.

Instances in a dataset are expected to have values for every attribute
criteria are applied on. Subsetting on an attribute an instance lacks
is a programming error and panics; use Validate to check instances
beforehand.
*/
type Dataset interface {
	Count() int
	Instances() []*Instance
	SubsetWith(feature.Criterion) Dataset
	CountClassifiers() []ClassifierCount
	Criteria() []feature.Criterion
}

/*
ClassifierCount pairs a classifier with the number of instances
labeled with it.
*/
type ClassifierCount struct {
	Classifier feature.Classifier
	Count      int
}

/*
Generator is a function that takes a slice of instances
and generates a dataset with them.
*/
type Generator func([]*Instance) Dataset

type memoryIntensiveSubsettingDataset struct {
	instances []*Instance
	counts    []ClassifierCount
	criteria  []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	instances []*Instance
	criteria  []feature.Criterion
}

/*
New takes a slice of instances and returns a dataset built with them.
The dataset will be a CPU intensive one when the number of instances is
over instanceCountThresholdForDatasetImplementation
*/
func New(instances []*Instance) Dataset {
	if len(instances) > instanceCountThresholdForDatasetImplementation {
		return NewCPUIntensive(instances)
	}
	return NewMemoryIntensive(instances)
}

/*
NewMemoryIntensive takes a slice of instances and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of instances when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(instances []*Instance) Dataset {
	return newMemoryIntensive(instances, nil)
}

/*
NewCPUIntensive takes a slice of instances and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the instances when subsetting, stores the
applying criteria to define the subset and keeps the same
instance slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the instances of the dataset will apply the criteria of the dataset
on all original instances (the ones provided to this method).
*/
func NewCPUIntensive(instances []*Instance) Dataset {
	return &cpuIntensiveSubsettingDataset{instances, nil}
}

/*
Validate takes a dataset and a slice of attributes and returns an error
describing the first instance in the dataset that lacks a value for any
of the attributes, or nil if all of them are complete.
*/
func Validate(s Dataset, attributes []feature.Attribute) error {
	for i, instance := range s.Instances() {
		for _, a := range attributes {
			if !instance.Has(a) {
				return fmt.Errorf("instance %d (%v) has no value for attribute %s", i, instance, a)
			}
		}
	}
	return nil
}

func newMemoryIntensive(instances []*Instance, criteria []feature.Criterion) *memoryIntensiveSubsettingDataset {
	return &memoryIntensiveSubsettingDataset{instances, countClassifiers(instances), criteria}
}

func (s *memoryIntensiveSubsettingDataset) Count() int {
	return len(s.instances)
}

func (s *cpuIntensiveSubsettingDataset) Count() int {
	var length int
	s.iterateOnDataset(func(_ *Instance) bool {
		length++
		return true
	})
	return length
}

func (s *memoryIntensiveSubsettingDataset) Instances() []*Instance {
	return s.instances
}

func (s *cpuIntensiveSubsettingDataset) Instances() []*Instance {
	if len(s.criteria) == 0 {
		return s.instances
	}
	var instances []*Instance
	s.iterateOnDataset(func(instance *Instance) bool {
		instances = append(instances, instance)
		return true
	})
	return instances
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(c feature.Criterion) Dataset {
	var instances []*Instance
	for _, instance := range s.instances {
		if satisfies(instance, c) {
			instances = append(instances, instance)
		}
	}
	return newMemoryIntensive(instances, append([]feature.Criterion{c}, s.criteria...))
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(c feature.Criterion) Dataset {
	criteria := append([]feature.Criterion{c}, s.criteria...)
	return &cpuIntensiveSubsettingDataset{s.instances, criteria}
}

func (s *memoryIntensiveSubsettingDataset) CountClassifiers() []ClassifierCount {
	return s.counts
}

func (s *cpuIntensiveSubsettingDataset) CountClassifiers() []ClassifierCount {
	return countClassifiers(s.Instances())
}

func (s *memoryIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(lambda func(*Instance) bool) {
	for _, instance := range s.instances {
		skip := false
		for _, c := range s.criteria {
			if !satisfies(instance, c) {
				skip = true
				break
			}
		}
		if !skip {
			if !lambda(instance) {
				break
			}
		}
	}
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("{Dataset %d instances %v}", len(s.instances), s.criteria)
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("{Dataset over %d instances %v}", len(s.instances), s.criteria)
}

func satisfies(instance *Instance, c feature.Criterion) bool {
	ok, err := c.SatisfiedBy(instance)
	if err != nil {
		panic(fmt.Sprintf("subsetting dataset with %v: %v", c, err))
	}
	return ok
}

func countClassifiers(instances []*Instance) []ClassifierCount {
	var result []ClassifierCount
	index := make(map[feature.Classifier]int)
	for _, instance := range instances {
		i, ok := index[instance.Classifier()]
		if !ok {
			i = len(result)
			index[instance.Classifier()] = i
			result = append(result, ClassifierCount{instance.Classifier(), 0})
		}
		result[i].Count++
	}
	return result
}
