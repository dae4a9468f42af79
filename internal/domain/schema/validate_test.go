package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursorcult/uno/internal/domain/defs"
)

func validDoc() *defs.Document {
	doc := defs.NewDocument()
	err := defs.Merge(doc, "core", defs.Aggregate(map[string]defs.FileRecord{
		"user.py": {Defs: []defs.Definition{{Kind: defs.KindClass, Name: "User", Line: 1}}},
		"util.py": {Defs: []defs.Definition{{Kind: defs.KindFunction, Name: "a", Line: 1}, {Kind: defs.KindFunction, Name: "b", Line: 9}}},
		"shim.py": {Defs: []defs.Definition{}},
	}), false)
	if err != nil {
		panic(err)
	}
	err = defs.Merge(doc, "tests", defs.Aggregate(map[string]defs.FileRecord{
		"test_user.py": {Defs: []defs.Definition{{Kind: defs.KindFunction, Name: "test_a", Line: 3}}, Test: true},
	}), false)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestValidate_ValidDocument(t *testing.T) {
	doc := validDoc()
	require.NoError(t, Validate(doc))
	// Idempotent: validating an already-valid document succeeds again.
	require.NoError(t, Validate(doc))
}

func TestValidate_WrongSchemaLiteral(t *testing.T) {
	doc := validDoc()
	doc.Schema = "cursorcult.defs.v0"
	err := Validate(doc)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "schema", se.Field)
}

func TestValidate_StaleDomainCount(t *testing.T) {
	doc := validDoc()
	doc.Domains["core"].Single++ // drift between detail and summary
	err := Validate(doc)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "domains.core.single", se.Field)
}

func TestValidate_StaleTotals(t *testing.T) {
	doc := validDoc()
	doc.Multi = 7
	err := Validate(doc)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "multi", se.Field)
}

func TestValidate_BadDefinition(t *testing.T) {
	doc := validDoc()
	doc.Domains["core"].Files["bad.py"] = defs.FileRecord{
		Defs: []defs.Definition{{Kind: "method", Name: "x", Line: 1}},
	}
	defs.Recompute(doc)
	var se *Error
	require.ErrorAs(t, Validate(doc), &se)
	assert.Contains(t, se.Field, "bad.py")

	doc = validDoc()
	doc.Domains["core"].Files["bad.py"] = defs.FileRecord{
		Defs: []defs.Definition{{Kind: defs.KindFunction, Name: "x", Line: 0}},
	}
	defs.Recompute(doc)
	require.Error(t, Validate(doc))
}

func TestValidate_DefsOutOfOrder(t *testing.T) {
	doc := validDoc()
	doc.Domains["core"].Files["ooo.py"] = defs.FileRecord{
		Defs: []defs.Definition{
			{Kind: defs.KindFunction, Name: "b", Line: 9},
			{Kind: defs.KindFunction, Name: "a", Line: 2},
		},
	}
	defs.Recompute(doc)
	require.Error(t, Validate(doc))
}

func TestValidate_EmptyDomains(t *testing.T) {
	err := Validate(defs.NewDocument())
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "domains", se.Field)
}

func TestValidate_NullDefsList(t *testing.T) {
	doc, err := Decode([]byte(`{"schema":"cursorcult.defs.v1","domains":{"core":{"files":{"shim.py":{"defs":null}},"single":0,"multi":0}},"single":0,"multi":0}`))
	require.NoError(t, err)

	var se *Error
	require.ErrorAs(t, Validate(doc), &se)
	assert.Contains(t, se.Field, "shim.py")
	assert.Equal(t, "must be a list", se.Reason)
}

func TestValidate_DuplicatePathAcrossDomains(t *testing.T) {
	doc := validDoc()
	doc.Domains["tests"].Files["user.py"] = defs.FileRecord{}
	defs.Recompute(doc)
	var se *Error
	require.ErrorAs(t, Validate(doc), &se)
	assert.Contains(t, se.Reason, "user.py")
}

func TestValidate_NeverMutatesInput(t *testing.T) {
	doc := validDoc()
	doc.Single = 41 // invalid on purpose
	before, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Error(t, Validate(doc))
	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

// =============================================================================
// Decode — strict round-trip
// =============================================================================

func TestDecode_RoundTripPreservesCounts(t *testing.T) {
	doc := validDoc()
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.NoError(t, Validate(got))
	assert.Equal(t, doc.Single, got.Single)
	assert.Equal(t, doc.Multi, got.Multi)
	assert.Equal(t, doc.Domains["core"].Single, got.Domains["core"].Single)
	assert.True(t, got.Domains["tests"].Files["test_user.py"].Test)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte(`{"schema":"cursorcult.defs.v1","domains":{},"single":0,"multi":0,"extra":1}`))
	var se *Error
	require.ErrorAs(t, err, &se)
}

func TestDecode_RejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"schema":`))
	require.Error(t, err)
}
