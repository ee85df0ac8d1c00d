package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qbe/v1/qbe"
	"github.com/Aleph-Alpha/qbe/v1/sqlite"
)

const configTemplate = `
service_name: qbe-test
logger:
  level: error
backend: %s
sqlite:
  path: %s
entities:
  - name: widgets
    attributes:
      - {name: id, type: numeric}
      - {name: name, type: text, searchable: true}
      - {name: count, type: numeric, column: qty, searchable: true}
      - {name: note, type: text}
`

// setupWorkspace seeds a sqlite database file and writes a config pointing at it.
func setupWorkspace(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "widgets.db")

	store, err := sqlite.Open(sqlite.Config{Path: dbPath})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Exec(ctx, `CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT, qty INTEGER, note TEXT)`)
	require.NoError(t, err)
	for _, row := range []struct {
		id   int
		name string
		qty  int
		note string
	}{
		{1, "FooBar", 5, "first"},
		{2, "bar", 7, "second"},
		{3, "xFoox", 5, "third"},
		{4, "baz", 9, "has Foo inside"},
	} {
		_, err = store.Exec(ctx, `INSERT INTO widgets (id, name, qty, note) VALUES (?, ?, ?, ?)`,
			row.id, row.name, row.qty, row.note)
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())

	configPath := filepath.Join(dir, "qbe.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(configTemplate, backend, dbPath)), 0o600))
	return configPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func names(t *testing.T, rows []map[string]any) []string {
	t.Helper()
	result := make([]string, 0, len(rows))
	for _, row := range rows {
		name, ok := row["name"].(string)
		require.True(t, ok, "row without name: %v", row)
		result = append(result, name)
	}
	return result
}

func TestBuildExample(t *testing.T) {
	configPath := setupWorkspace(t, "sqlite")

	out, err := execute(t, "--config", configPath, "build", "example", "-e", "widgets", "-j", `{"name":"Foo","count":5,"note":"ignored"}`)
	require.NoError(t, err)

	var result struct {
		Entity    string `json:"entity"`
		Text      string `json:"text"`
		Backend   string `json:"backend"`
		Predicate map[string]any
		Query     struct {
			SQL  string `json:"sql"`
			Args []any  `json:"args"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "widgets", result.Entity)
	assert.Equal(t, "sqlite", result.Backend)
	assert.Equal(t, `name ~ "Foo" AND count = 5`, result.Text)
	assert.Contains(t, result.Query.SQL, `instr("name", ?) > 0`)
	assert.Contains(t, result.Query.SQL, `"qty" = ?`)
	assert.NotContains(t, result.Query.SQL, "note")
	assert.Equal(t, []any{"Foo", float64(5)}, result.Query.Args)
}

func TestBuildPattern(t *testing.T) {
	configPath := setupWorkspace(t, "sqlite")

	out, err := execute(t, "-c", configPath, "build", "pattern", "-e", "widgets", "Foo")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, `name ~ "Foo" OR note ~ "Foo"`, result["text"])
}

func TestBuild_Errors(t *testing.T) {
	configPath := setupWorkspace(t, "sqlite")

	t.Run("unknown entity", func(t *testing.T) {
		_, err := execute(t, "-c", configPath, "build", "pattern", "-e", "gadgets", "Foo")
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrUnknownEntity)
	})

	t.Run("example is not an object", func(t *testing.T) {
		_, err := execute(t, "-c", configPath, "build", "example", "-e", "widgets", "-j", `[1, 2]`)
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrInvalidArgument)
	})

	t.Run("null example", func(t *testing.T) {
		_, err := execute(t, "-c", configPath, "build", "example", "-e", "widgets", "-j", "null")
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrInvalidArgument)
	})

	t.Run("null example is not searched", func(t *testing.T) {
		out, err := execute(t, "-c", configPath, "search", "example", "-e", "widgets", "-j", "null")
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrInvalidArgument)
		assert.Empty(t, out)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := execute(t, "-c", configPath, "build", "example", "-e", "widgets", "-j", `{"count":5} {"count":7}`)
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrInvalidArgument)
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := execute(t, "-c", configPath, "build", "example", "-e", "widgets", "-j", `{"count":"five"}`)
		require.Error(t, err)
		assert.ErrorIs(t, err, qbe.ErrValueType)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := execute(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "build", "pattern", "-e", "widgets", "Foo")
		require.Error(t, err)
	})
}

func TestBuild_Qdrant(t *testing.T) {
	configPath := setupWorkspace(t, "qdrant")

	out, err := execute(t, "-c", configPath, "build", "example", "-e", "widgets", "-j", `{"count":5}`)
	require.NoError(t, err)

	var result struct {
		Query map[string]any `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.Query, "must")

	out, err = execute(t, "-c", configPath, "build", "example", "-e", "widgets")
	require.NoError(t, err)
	assert.Contains(t, out, `"query": null`)
}

func TestSearchExample(t *testing.T) {
	configPath := setupWorkspace(t, "sqlite")

	out, err := execute(t, "-c", configPath, "search", "example", "-e", "widgets", "-j", `{"count":5}`)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.ElementsMatch(t, []string{"FooBar", "xFoox"}, names(t, rows))
}

func TestSearchPattern(t *testing.T) {
	configPath := setupWorkspace(t, "sqlite")

	t.Run("single entity", func(t *testing.T) {
		out, err := execute(t, "-c", configPath, "search", "pattern", "-e", "widgets", "Foo")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		assert.ElementsMatch(t, []string{"FooBar", "xFoox", "baz"}, names(t, rows))
	})

	t.Run("case sensitive", func(t *testing.T) {
		out, err := execute(t, "-c", configPath, "search", "pattern", "-e", "widgets", "foo")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		assert.Empty(t, rows)
	})

	t.Run("all entities", func(t *testing.T) {
		out, err := execute(t, "-c", configPath, "search", "pattern", "--limit", "1", "Foo")
		require.NoError(t, err)

		var results map[string][]map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Contains(t, results, "widgets")
		assert.Len(t, results["widgets"], 1)
	})
}
