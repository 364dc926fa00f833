/*
Package json renders trees as JSON documents.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/sapling/tree"
)

type node struct {
	Attribute   string   `json:"attribute,omitempty"`
	True        *node    `json:"true,omitempty"`
	False       *node    `json:"false,omitempty"`
	Label       string   `json:"label,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
	Weight      int      `json:"weight,omitempty"`
}

type jsonTree struct {
	Attributes []string `json:"attributes"`
	Reference  string   `json:"reference"`
	Baseline   *node    `json:"baseline"`
	Root       *node    `json:"root"`
}

/*
WriteJSONTree takes an io.Writer and a pointer to a tree.Tree and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "attributes": an array with the names of the attributes the tree was
  grown with
* "reference": the classifier impurity was computed against
* "baseline": the prediction of the most frequent classifier in the training
  dataset
* "root": the root node of the tree.
Internal nodes are serialized as objects with an "attribute" field and the
subtrees for each of its values on "true" and "false" fields. Leaves and
predictions are serialized as objects with "label", "probability" and "weight"
fields.
An error is returned if the tree cannot be serialized or written
onto the io.Writer.
*/
func WriteJSONTree(w io.Writer, t *tree.Tree) error {
	root, err := newNode(t.Root())
	if err != nil {
		return err
	}
	jt := &jsonTree{
		Reference: t.Reference().String(),
		Baseline:  newPredictionNode(t.Baseline()),
		Root:      root,
	}
	for _, a := range t.Attributes() {
		jt.Attributes = append(jt.Attributes, a.Name())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(jt)
	if err != nil {
		return fmt.Errorf("serializing tree: %v", err)
	}
	return nil
}

func newNode(n tree.Node) (*node, error) {
	switch n := n.(type) {
	case *tree.Leaf:
		return newPredictionNode(n.Prediction()), nil
	case *tree.Internal:
		trueChild, err := newNode(n.TrueChild())
		if err != nil {
			return nil, err
		}
		falseChild, err := newNode(n.FalseChild())
		if err != nil {
			return nil, err
		}
		return &node{Attribute: n.Attribute().Name(), True: trueChild, False: falseChild}, nil
	}
	return nil, fmt.Errorf("serializing tree: unknown node type %T", n)
}

func newPredictionNode(p *tree.Prediction) *node {
	if p == nil {
		return nil
	}
	probability := p.Probability()
	return &node{Label: p.Classifier().String(), Probability: &probability, Weight: p.Weight()}
}
