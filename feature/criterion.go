package feature

import "fmt"

/*
Criterion represents a constraint on an attribute: the value a sample
must have for it.

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the sample has the criterion's value for the attribute.
*/
type Criterion struct {
	Attribute Attribute
	Value     bool
}

/*
NewCriterion takes an attribute and a boolean value and returns the
Criterion satisfied by samples with that value for the attribute.
*/
func NewCriterion(a Attribute, value bool) Criterion {
	return Criterion{a, value}
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. An error is returned if the sample cannot provide
a value for the criterion's attribute.
*/
func (c Criterion) SatisfiedBy(s Sample) (bool, error) {
	v, err := s.ValueFor(c.Attribute)
	if err != nil {
		return false, err
	}
	return v == c.Value, nil
}

func (c Criterion) String() string {
	if c.Value {
		return fmt.Sprintf("%s = True", c.Attribute)
	}
	return fmt.Sprintf("%s = False", c.Attribute)
}
