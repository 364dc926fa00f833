package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
Instance represents a labeled example: a complete assignment of boolean
values to attributes and the classifier the example belongs to.
Instances are immutable once created.
*/
type Instance struct {
	values     map[feature.Attribute]bool
	classifier feature.Classifier
}

/*
NewInstance takes a map of attributes to boolean values and a classifier
and returns an instance with a copy of the values labeled with the
classifier.
*/
func NewInstance(values map[feature.Attribute]bool, c feature.Classifier) *Instance {
	vs := make(map[feature.Attribute]bool, len(values))
	for a, v := range values {
		vs[a] = v
	}
	return &Instance{vs, c}
}

/*
ValueFor returns the value of the instance for the given attribute, or
a *feature.MissingValueError if the instance has no value for it.
*/
func (i *Instance) ValueFor(a feature.Attribute) (bool, error) {
	v, ok := i.values[a]
	if !ok {
		return false, &feature.MissingValueError{Attribute: a}
	}
	return v, nil
}

// Classifier returns the label of the instance.
func (i *Instance) Classifier() feature.Classifier {
	return i.classifier
}

/*
Has returns whether the instance defines a value for every one of
the given attributes.
*/
func (i *Instance) Has(attributes ...feature.Attribute) bool {
	for _, a := range attributes {
		if _, ok := i.values[a]; !ok {
			return false
		}
	}
	return true
}

func (i *Instance) String() string {
	attrs := make([]string, 0, len(i.values))
	for a, v := range i.values {
		attrs = append(attrs, fmt.Sprintf("%s:%t", a, v))
	}
	sort.Strings(attrs)
	return fmt.Sprintf("%s [%s]", i.classifier, strings.Join(attrs, " "))
}
