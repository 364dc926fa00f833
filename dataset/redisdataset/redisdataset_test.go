package redisdataset

import (
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListElements(t *testing.T) {
	m, err := feature.NewMetadata(feature.Attributes("A", "B"), []feature.Classifier{"Yes", "No"})
	require.NoError(t, err)
	s := dataset.New([]*dataset.Instance{
		dataset.NewInstance(map[feature.Attribute]bool{"A": true, "B": false}, "Yes"),
		dataset.NewInstance(map[feature.Attribute]bool{"A": false, "B": true}, "No"),
	})
	values, err := listElements(s, m)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Yes No", "A B", "Yes true false", "No false true"}, values)

	_, err = listElements(s, &feature.Metadata{Attributes: feature.Attributes("C")})
	assert.Error(t, err)
}
