package tree

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
)

/*
Node is a node of a tree. It is either a *Leaf, holding the prediction
for the samples that reach it, or an *Internal node, splitting samples
on the value of an attribute between exactly two subtrees.

Nodes are immutable once built.
*/
type Node interface {
	node()
}

/*
Leaf is a terminal node of a tree.
*/
type Leaf struct {
	prediction *Prediction
}

/*
Internal is a decision node of a tree: samples with a true value for its
attribute continue down its true child, the rest down its false child.
*/
type Internal struct {
	attribute  feature.Attribute
	trueChild  Node
	falseChild Node
}

/*
NewLeaf takes a prediction and returns a leaf node making it.
*/
func NewLeaf(p *Prediction) *Leaf {
	if p == nil {
		panic("leaf node without prediction")
	}
	return &Leaf{p}
}

/*
NewInternal takes an attribute and the subtrees for samples with a true
and with a false value for it and returns an internal node joining them.
*/
func NewInternal(a feature.Attribute, trueChild, falseChild Node) *Internal {
	if trueChild == nil || falseChild == nil {
		panic(fmt.Sprintf("internal node on %s without both children", a))
	}
	return &Internal{a, trueChild, falseChild}
}

func (*Leaf) node()     {}
func (*Internal) node() {}

// Prediction returns the prediction made by the leaf.
func (l *Leaf) Prediction() *Prediction {
	return l.prediction
}

// Classifier returns the classifier predicted by the leaf.
func (l *Leaf) Classifier() feature.Classifier {
	return l.prediction.Classifier()
}

// Probability returns the probability of the leaf's classifier.
func (l *Leaf) Probability() float64 {
	return l.prediction.Probability()
}

// Attribute returns the attribute the node splits samples on.
func (n *Internal) Attribute() feature.Attribute {
	return n.attribute
}

// TrueChild returns the subtree for samples with a true value for the attribute.
func (n *Internal) TrueChild() Node {
	return n.trueChild
}

// FalseChild returns the subtree for samples with a false value for the attribute.
func (n *Internal) FalseChild() Node {
	return n.falseChild
}

/*
Child takes a boolean value and returns the subtree for samples with
that value for the node's attribute.
*/
func (n *Internal) Child(value bool) Node {
	if value {
		return n.trueChild
	}
	return n.falseChild
}

func (l *Leaf) String() string {
	return l.prediction.String()
}

func (n *Internal) String() string {
	return fmt.Sprintf("{%s ? %v : %v}", n.attribute, n.trueChild, n.falseChild)
}

/*
Predict takes a node and a sample and descends from the node to a leaf,
following at every internal node the child for the sample's value on the
node's attribute. It returns the prediction of the reached leaf, or an
error if the sample cannot provide a value it is asked about.
*/
func Predict(n Node, s feature.Sample) (*Prediction, error) {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.prediction, nil
		case *Internal:
			v, err := s.ValueFor(node.attribute)
			if err != nil {
				return nil, fmt.Errorf("predicting sample: %v", err)
			}
			n = node.Child(v)
		default:
			panic(fmt.Sprintf("unknown node type %T", n))
		}
	}
}

/*
Classify takes a node and a sample and returns the classifier predicted
for the sample by the subtree under the node, or an error if the sample
cannot provide a value it is asked about.
*/
func Classify(n Node, s feature.Sample) (feature.Classifier, error) {
	p, err := Predict(n, s)
	if err != nil {
		return "", err
	}
	return p.Classifier(), nil
}
