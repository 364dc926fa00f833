package yaml

import (
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata(t *testing.T) {
	m, err := ReadMetadata([]byte(`
classes:
  - live
  - die
attributes:
  - AGE
  - FEMALE
  - STEROID
`))
	require.NoError(t, err)
	assert.Equal(t, feature.Attributes("AGE", "FEMALE", "STEROID"), m.Attributes)
	assert.Equal(t, []feature.Classifier{"live", "die"}, m.Classifiers)
}

func TestReadMetadataWithoutClasses(t *testing.T) {
	m, err := ReadMetadata([]byte("attributes: [A, B]\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Classifiers)
	assert.True(t, m.Accepts("whatever"))
}

func TestReadMetadataErrors(t *testing.T) {
	_, err := ReadMetadata([]byte("classes: [a, b]\n"))
	assert.Error(t, err)
	_, err = ReadMetadata([]byte("attributes: [A, A]\n"))
	assert.Error(t, err)
	_, err = ReadMetadata([]byte("attributes: [A\n"))
	assert.Error(t, err)
	_, err = ReadMetadataFromFile("does/not/exist.yml")
	assert.Error(t, err)
}
