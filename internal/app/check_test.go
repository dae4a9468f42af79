package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursorcult/uno/internal/domain/rule"
	"github.com/cursorcult/uno/internal/domain/schema"
)

const checkDoc = `{
  "schema": "cursorcult.defs.v1",
  "domains": {
    "core": {
      "files": {
        "src/user.py": {
          "defs": [{"kind": "class", "name": "User", "lineno": 1}]
        },
        "src/util.py": {
          "defs": [
            {"kind": "function", "name": "a", "lineno": 1},
            {"kind": "function", "name": "b", "lineno": 5}
          ]
        }
      },
      "single": 1,
      "multi": 1
    }
  },
  "single": 1,
  "multi": 1
}
`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defs.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestValidate_AcceptsWellFormedDocument(t *testing.T) {
	doc, err := Validate(writeDoc(t, checkDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, doc.DomainNames())
}

func TestValidate_RejectsStaleCounts(t *testing.T) {
	bad := writeDoc(t, `{
  "schema": "cursorcult.defs.v1",
  "domains": {
    "core": {
      "files": {
        "a.py": {"defs": [{"kind": "function", "name": "a", "lineno": 1}]}
      },
      "single": 1,
      "multi": 0
    }
  },
  "single": 7,
  "multi": 0
}`)

	_, err := Validate(bad)
	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "single", serr.Field)
}

func TestValidate_RejectsEmptyDomains(t *testing.T) {
	bad := writeDoc(t, `{"schema": "cursorcult.defs.v1", "domains": {}, "single": 0, "multi": 0}`)

	_, err := Validate(bad)
	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "domains", serr.Field)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestCheck_ReportsViolations(t *testing.T) {
	res, err := Check(writeDoc(t, checkDoc), rule.Options{})
	require.NoError(t, err)

	assert.False(t, res.Report.Overall)
	assert.Equal(t, []string{"src/util.py"}, res.Report.Failing())
}

func TestCheck_StopsOnInvalidDocument(t *testing.T) {
	bad := writeDoc(t, `{"schema": "nope", "domains": {}, "single": 0, "multi": 0}`)

	_, err := Check(bad, rule.Options{})
	assert.Error(t, err)
}
