package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONTree(t *testing.T) {
	root := tree.NewInternal("A",
		tree.NewLeaf(tree.NewPrediction("Yes", 1.0, 2)),
		tree.NewLeaf(tree.NewPrediction("No", 0.5, 2)),
	)
	tr := tree.New(root, feature.Attributes("A", "B"), "Yes", tree.NewPrediction("Yes", 0.75, 4))
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(buf, tr))

	expected := `{
		"attributes": ["A", "B"],
		"reference": "Yes",
		"baseline": {"label": "Yes", "probability": 0.75, "weight": 4},
		"root": {
			"attribute": "A",
			"true": {"label": "Yes", "probability": 1, "weight": 2},
			"false": {"label": "No", "probability": 0.5, "weight": 2}
		}
	}`
	assert.JSONEq(t, expected, buf.String())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "root")
}

func TestWriteJSONTreeKeepsZeroProbability(t *testing.T) {
	tr := tree.New(tree.NewLeaf(tree.NewPrediction("No", 0, 0)), nil, "No", nil)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(buf, tr))
	assert.JSONEq(t, `{"attributes": null, "reference": "No", "baseline": null, "root": {"label": "No", "probability": 0}}`, buf.String())
}
