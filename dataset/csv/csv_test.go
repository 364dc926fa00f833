package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDatasetFirstColumnAsClass(t *testing.T) {
	content := "class,A,B\nYes,true,false\nNo,0,1\nYes,T,F\n"
	s, m, err := ReadDataset(strings.NewReader(content), "", dataset.New)
	require.NoError(t, err)
	assert.Equal(t, feature.Attributes("A", "B"), m.Attributes)
	assert.Equal(t, []feature.Classifier{"Yes", "No"}, m.Classifiers)
	require.Equal(t, 3, s.Count())
	v, err := s.Instances()[1].ValueFor("B")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestReadDatasetNamedClassColumn(t *testing.T) {
	content := "A,outcome,B\ntrue,die,false\nfalse,live,true\n"
	s, m, err := ReadDataset(strings.NewReader(content), "outcome", dataset.New)
	require.NoError(t, err)
	assert.Equal(t, feature.Attributes("A", "B"), m.Attributes)
	instances := s.Instances()
	assert.Equal(t, feature.Classifier("die"), instances[0].Classifier())
	v, err := instances[1].ValueFor("A")
	require.NoError(t, err)
	assert.False(t, v)
}

func TestReadDatasetErrors(t *testing.T) {
	_, _, err := ReadDataset(strings.NewReader("A,B\ntrue,false\n"), "class", dataset.New)
	assert.Error(t, err, "missing class column")
	_, _, err = ReadDataset(strings.NewReader("class,A\nYes,maybe\n"), "", dataset.New)
	assert.Error(t, err, "non boolean value")
	_, _, err = ReadDataset(strings.NewReader("class,A\nYes,true,false\n"), "", dataset.New)
	assert.Error(t, err, "wrong field count")
	_, _, err = ReadDataset(strings.NewReader("class,A,A\nYes,true,false\n"), "", dataset.New)
	assert.Error(t, err, "duplicated attribute")
	_, _, err = ReadDataset(strings.NewReader(""), "", dataset.New)
	assert.Error(t, err, "missing header")
}

func TestWriteDataset(t *testing.T) {
	content := "A,class,B\ntrue,Yes,false\nfalse,No,true\n"
	s, m, err := ReadDataset(strings.NewReader(content), "class", dataset.New)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDataset(buf, s, "label", m.Attributes))
	assert.Equal(t, "label,A,B\nYes,true,false\nNo,false,true\n", buf.String())

	w, err := NewWriter(&bytes.Buffer{}, "label", feature.Attributes("C"))
	require.NoError(t, err)
	n, err := w.Write(s.Instances())
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}
