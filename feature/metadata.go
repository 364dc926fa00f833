package feature

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
)

/*
Metadata describes the data a tree is grown from: the ordered list of
attributes samples have values for and the classifiers samples may be
labeled with. An empty Classifiers slice means any label is accepted.
*/
type Metadata struct {
	Attributes  []Attribute
	Classifiers []Classifier
}

/*
NewMetadata takes a slice of attributes and a slice of classifiers and
returns Metadata for them, or an error if an attribute or classifier is
declared more than once or has an empty name.
*/
func NewMetadata(attributes []Attribute, classifiers []Classifier) (*Metadata, error) {
	seen := mapset.NewSet()
	for _, a := range attributes {
		if a == "" {
			return nil, fmt.Errorf("attribute with empty name")
		}
		if !seen.Add(a) {
			return nil, fmt.Errorf("attribute %s declared more than once", a)
		}
	}
	seen = mapset.NewSet()
	for _, c := range classifiers {
		if c == "" {
			return nil, fmt.Errorf("classifier with empty name")
		}
		if !seen.Add(c) {
			return nil, fmt.Errorf("classifier %s declared more than once", c)
		}
	}
	return &Metadata{attributes, classifiers}, nil
}

/*
Accepts returns whether the given classifier is a valid label according
to the metadata.
*/
func (m *Metadata) Accepts(c Classifier) bool {
	if len(m.Classifiers) == 0 {
		return true
	}
	for _, mc := range m.Classifiers {
		if mc == c {
			return true
		}
	}
	return false
}

/*
Attribute takes a name and returns the attribute with that name
in the metadata and true, or the empty attribute and false if
the metadata declares no such attribute.
*/
func (m *Metadata) Attribute(name string) (Attribute, bool) {
	for _, a := range m.Attributes {
		if a.Name() == name {
			return a, true
		}
	}
	return "", false
}
