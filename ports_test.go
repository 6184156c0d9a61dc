package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstantCheckedAdd(t *testing.T) {
	i := Instant(10)
	sum, ok := i.CheckedAdd(5)
	assert.True(t, ok)
	assert.EqualValues(t, 15, sum)
}

func TestInstantCheckedAddOverflow(t *testing.T) {
	i := Instant(^uint64(0))
	_, ok := i.CheckedAdd(1)
	assert.False(t, ok)
}

func TestInstantAfter(t *testing.T) {
	assert.True(t, Instant(200).After(Instant(100)))
	assert.False(t, Instant(100).After(Instant(200)))
	assert.False(t, Instant(100).After(Instant(100)))
}

func TestWriteOpReadOp(t *testing.T) {
	w := WriteOp([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, w.Write)
	assert.Nil(t, w.Read)

	buf := make([]byte, 4)
	r := ReadOp(buf)
	assert.Nil(t, r.Write)
	assert.Len(t, r.Read, 4)
}
