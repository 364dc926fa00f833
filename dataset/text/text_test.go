package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hepatitis = `live die
AGE FEMALE STEROID

live true false false
die  false	true true
live TRUE FALSE true
`

func TestReadDataset(t *testing.T) {
	s, m, err := ReadDataset(strings.NewReader(hepatitis), dataset.New)
	require.NoError(t, err)
	assert.Equal(t, feature.Attributes("AGE", "FEMALE", "STEROID"), m.Attributes)
	assert.Equal(t, []feature.Classifier{"live", "die"}, m.Classifiers)
	require.Equal(t, 3, s.Count())
	instances := s.Instances()
	assert.Equal(t, feature.Classifier("die"), instances[1].Classifier())
	v, err := instances[1].ValueFor("FEMALE")
	require.NoError(t, err)
	assert.True(t, v)
	v, err = instances[2].ValueFor("AGE")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestReadDatasetErrors(t *testing.T) {
	cases := map[string]string{
		"wrong field count":    "a b\nX Y\na true\n",
		"non boolean value":    "a b\nX Y\na true maybe\n",
		"undeclared label":     "a b\nX Y\nc true false\n",
		"duplicated attribute": "a b\nX X\na true false\n",
		"missing header":       "a b\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ReadDataset(strings.NewReader(content), dataset.New)
			assert.Error(t, err)
		})
	}
}

func TestReadDatasetErrorNamesLine(t *testing.T) {
	_, _, err := ReadDataset(strings.NewReader("a b\nX Y\na true false\n\nb 1 2\n"), dataset.New)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
}

func TestParseInstance(t *testing.T) {
	m, err := feature.NewMetadata(feature.Attributes("X", "Y"), nil)
	require.NoError(t, err)
	i, err := ParseInstance("anything t 0", m)
	require.NoError(t, err)
	assert.Equal(t, feature.Classifier("anything"), i.Classifier())
	v, err := i.ValueFor("Y")
	require.NoError(t, err)
	assert.False(t, v)
}

func TestWriteDataset(t *testing.T) {
	s, m, err := ReadDataset(strings.NewReader(hepatitis), dataset.New)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDataset(buf, s, m))
	expected := "live die\nAGE FEMALE STEROID\nlive true false false\ndie false true true\nlive true false true\n"
	assert.Equal(t, expected, buf.String())

	s2, m2, err := ReadDataset(buf, dataset.New)
	require.NoError(t, err)
	assert.Equal(t, m, m2)
	assert.Equal(t, s.Count(), s2.Count())
}
