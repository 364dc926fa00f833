/*
Package feature defines the values a decision tree reasons about:
the boolean attributes samples are described with and the classifiers
(labels) they are assigned.
*/
package feature

import "fmt"

/*
Attribute names a boolean property that can be observed on a sample.
Two attributes are the same attribute when their names are equal.
*/
type Attribute string

/*
Classifier names an outcome category a sample can belong to.
Two classifiers are the same classifier when their names are equal.
*/
type Classifier string

/*
Sample is an interface for something whose attribute values can be
queried.

Its ValueFor method returns the boolean value the sample has for the given
attribute, or an error if the value cannot be obtained.
*/
type Sample interface {
	ValueFor(Attribute) (bool, error)
}

/*
MissingValueError is returned by samples that have no value for an
attribute they are asked about.
*/
type MissingValueError struct {
	Attribute Attribute
}

func (mve *MissingValueError) Error() string {
	return fmt.Sprintf("no value for attribute %s", mve.Attribute)
}

// Name returns the name of the attribute as a string.
func (a Attribute) Name() string {
	return string(a)
}

func (a Attribute) String() string {
	return string(a)
}

func (c Classifier) String() string {
	return string(c)
}

/*
Attributes takes a slice of strings and returns a slice of attributes
with those names in the same order.
*/
func Attributes(names ...string) []Attribute {
	result := make([]Attribute, 0, len(names))
	for _, n := range names {
		result = append(result, Attribute(n))
	}
	return result
}

/*
Without takes a slice of attributes and an attribute and returns a new
slice with the attributes of the given one in the same order except the
first occurrence of the given attribute. The given slice is not modified.
*/
func Without(attributes []Attribute, a Attribute) []Attribute {
	result := make([]Attribute, 0, len(attributes))
	removed := false
	for _, attr := range attributes {
		if !removed && attr == a {
			removed = true
			continue
		}
		result = append(result, attr)
	}
	return result
}
