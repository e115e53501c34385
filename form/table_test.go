package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKernel struct{ id int }

func (k *fakeKernel) EnabledCoefficients() []bool { return nil }
func (k *fakeKernel) TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, cellOrientation int) {
}

func TestIntegralTableLookup(t *testing.T) {
	table := IntegralTable[CellIntegral]{
		Factories: map[int]func() CellIntegral{
			0: func() CellIntegral { return &fakeKernel{id: 0} },
			4: func() CellIntegral { return &fakeKernel{id: 4} },
		},
		Default: func() CellIntegral { return &fakeKernel{id: -1} },
	}

	assert.Equal(t, 5, table.MaxSubdomainID())
	assert.True(t, table.Present())

	k, ok := table.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, 4, k.(*fakeKernel).id)

	k, ok = table.Lookup(2)
	assert.False(t, ok)
	assert.Nil(t, k)

	k, ok = table.CreateDefault()
	require.True(t, ok)
	assert.Equal(t, -1, k.(*fakeKernel).id)
}

func TestIntegralTableEmpty(t *testing.T) {
	var table IntegralTable[VertexIntegral]
	assert.Zero(t, table.MaxSubdomainID())
	assert.False(t, table.Present())

	k, ok := table.Lookup(0)
	assert.False(t, ok)
	assert.Nil(t, k)

	k, ok = table.CreateDefault()
	assert.False(t, ok)
	assert.Nil(t, k)
}

func TestIntegralTableDefaultOnly(t *testing.T) {
	table := IntegralTable[CellIntegral]{
		Default: func() CellIntegral { return &fakeKernel{} },
	}
	assert.Zero(t, table.MaxSubdomainID())
	assert.True(t, table.Present())
}
