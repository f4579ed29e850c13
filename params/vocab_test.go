package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularyAdd(t *testing.T) {
	v := NewVocabulary()

	assert.Equal(t, 0, v.Add("uno"))
	assert.Equal(t, 1, v.Add("dos"))
	assert.Equal(t, 0, v.Add("uno"))
	assert.Equal(t, 2, v.Add("tres"))

	assert.Equal(t, 3, v.Size())
	assert.Equal(t, []string{"uno", "dos", "tres"}, v.IDToToken)

	id, ok := v.Lookup("dos")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = v.Lookup("cuatro")
	assert.False(t, ok)
}

func TestVocabularyZeroValue(t *testing.T) {
	var v Vocabulary
	assert.Equal(t, 0, v.Size())
	assert.Equal(t, 0, v.Add("a"))
	assert.Equal(t, 1, v.Size())
}
