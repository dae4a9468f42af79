package defs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(lines ...int) FileRecord {
	var ds []Definition
	for _, ln := range lines {
		ds = append(ds, Definition{Kind: KindFunction, Name: "f", Line: ln})
	}
	return FileRecord{Defs: ds}
}

// =============================================================================
// Aggregation — single/multi counting
// =============================================================================

func TestAggregate_Counts(t *testing.T) {
	d := Aggregate(map[string]FileRecord{
		"a.py": rec(1),
		"b.py": rec(1, 5),
		"c.py": rec(),
		"d.py": rec(2),
	})
	assert.Equal(t, 2, d.Single)
	assert.Equal(t, 1, d.Multi)
	assert.Equal(t, 1, ZeroDefCount(d), "zero-def files are a diagnostic, not single or multi")
	assert.LessOrEqual(t, d.Single+d.Multi, len(d.Files))
}

func TestAggregate_CopiesInput(t *testing.T) {
	in := map[string]FileRecord{"a.py": rec(1)}
	d := Aggregate(in)
	delete(in, "a.py")
	assert.Len(t, d.Files, 1)
}

// =============================================================================
// Merge — conflict unless accumulation is explicit
// =============================================================================

func TestMerge_InsertsNewDomain(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, Merge(doc, "core", Aggregate(map[string]FileRecord{"a.py": rec(1)}), false))
	require.NoError(t, Merge(doc, "tests", Aggregate(map[string]FileRecord{"test_a.py": rec(1, 2)}), false))

	assert.Equal(t, 1, doc.Single)
	assert.Equal(t, 1, doc.Multi)
	assert.ElementsMatch(t, []string{"core", "tests"}, doc.DomainNames())
}

func TestMerge_SameDomainWithoutAccumulate_Conflict(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, Merge(doc, "core", Aggregate(map[string]FileRecord{"a.py": rec(1)}), false))

	err := Merge(doc, "core", Aggregate(map[string]FileRecord{"b.py": rec(1)}), false)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "core", conflict.Domain)

	// Document unchanged from before the second invocation.
	assert.Len(t, doc.Domains["core"].Files, 1)
	assert.Equal(t, 1, doc.Single)
}

func TestMerge_Accumulate_UnionLastWriteWins(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, Merge(doc, "core", Aggregate(map[string]FileRecord{
		"a.py": rec(1),
		"b.py": rec(1),
	}), false))

	// Re-run replaces a.py (now multi) and adds c.py. Never summed.
	require.NoError(t, Merge(doc, "core", Aggregate(map[string]FileRecord{
		"a.py": rec(1, 9),
		"c.py": rec(3),
	}), true))

	core := doc.Domains["core"]
	assert.Len(t, core.Files, 3)
	assert.Equal(t, 2, core.Single, "b.py and c.py")
	assert.Equal(t, 1, core.Multi, "a.py after rewrite")
	assert.Equal(t, 2, doc.Single)
	assert.Equal(t, 1, doc.Multi)
}

func TestRecompute_IgnoresStaleStoredCounts(t *testing.T) {
	doc := NewDocument()
	doc.Domains["core"] = &Domain{
		Files:  map[string]FileRecord{"a.py": rec(1), "b.py": rec(1, 2)},
		Single: 99,
		Multi:  99,
	}
	Recompute(doc)
	assert.Equal(t, 1, doc.Domains["core"].Single)
	assert.Equal(t, 1, doc.Domains["core"].Multi)
	assert.Equal(t, 1, doc.Single)
	assert.Equal(t, 1, doc.Multi)
}

func TestSortDefs_LineKindNameOrder(t *testing.T) {
	ds := []Definition{
		{Kind: KindFunction, Name: "z", Line: 10},
		{Kind: KindFunction, Name: "a", Line: 3},
		{Kind: KindClass, Name: "B", Line: 3},
	}
	SortDefs(ds)
	assert.Equal(t, Definition{Kind: KindClass, Name: "B", Line: 3}, ds[0])
	assert.Equal(t, Definition{Kind: KindFunction, Name: "a", Line: 3}, ds[1])
	assert.Equal(t, Definition{Kind: KindFunction, Name: "z", Line: 10}, ds[2])
}
