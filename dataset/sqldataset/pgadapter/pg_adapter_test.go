package pgadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter(t *testing.T) {
	a, err := New("postgresql://localhost/sapling?sslmode=disable")
	require.NoError(t, err)
	defer a.DB().Close()
	assert.Equal(t, "$1", a.Placeholder(1))
	assert.Equal(t, "$12", a.Placeholder(12))
	c, err := a.ColumnName("FEMALE")
	require.NoError(t, err)
	assert.Equal(t, `"FEMALE"`, c)
	_, err = a.ColumnName(`x"y`)
	assert.Error(t, err)
}
