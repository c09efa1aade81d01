package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpus_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	c := NewCorpus(CategoryApex)
	c.Add("Zeta.cls", "class Zeta {}")
	c.Add("Alpha.cls", "class Alpha {}")
	c.Add("Mid.cls", "class Mid {}")

	assert.Equal(t, []string{"Zeta.cls", "Alpha.cls", "Mid.cls"}, c.Artifacts())
	assert.Equal(t, "class Alpha {}", c.Text("Alpha.cls"))
	assert.Equal(t, 3, c.Len())
}

func TestCorpus_AddAppendsOnDuplicateName(t *testing.T) {
	t.Parallel()

	c := NewCorpus(CategoryLWC)
	c.Add("accountCard.js", "import Status__c")
	c.Add("accountCard.js", "meta descriptor text")

	// One artifact, both texts searchable.
	require.Equal(t, 1, c.Len())
	assert.Contains(t, c.Text("accountCard.js"), "import Status__c")
	assert.Contains(t, c.Text("accountCard.js"), "meta descriptor text")
}

func TestLibrary_MissingCategoryIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	l := NewLibrary()
	c := l.Category(CategoryReports)

	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Artifacts())
}

func TestLibrary_TotalArtifacts(t *testing.T) {
	t.Parallel()

	l := NewLibrary()
	apex := NewCorpus(CategoryApex)
	apex.Add("A.cls", "a")
	apex.Add("B.cls", "b")
	flows := NewCorpus(CategoryFlows)
	flows.Add("F", "f")
	l.Put(apex)
	l.Put(flows)

	assert.Equal(t, 3, l.TotalArtifacts())
}

func TestCategories_StableOrder(t *testing.T) {
	t.Parallel()

	first := Categories()
	second := Categories()
	assert.Equal(t, first, second)
	assert.Equal(t, CategoryApex, first[0])
	assert.Len(t, first, 13)
}
