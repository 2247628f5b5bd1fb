package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawaudit/clawaudit/internal/errors"
)

func mustParse(t *testing.T, name, doc string) *Tree {
	t.Helper()
	tree, err := Parse(name, []byte(doc))
	require.NoError(t, err)
	return tree
}

func TestGetPreservesNativeTypes(t *testing.T) {
	tree := mustParse(t, "openclaw.json", `{
		"gateway": {"bind": "lan", "port": 18789, "auth": {"mode": "token", "token": ""}},
		"tools": {"elevated": {"enabled": false}, "deny": ["exec", "browser"]},
		"ratio": 0.5
	}`)

	bind, ok := tree.Get("gateway.bind").AsString()
	require.True(t, ok)
	assert.Equal(t, "lan", bind)

	port, ok := tree.Get("gateway.port").AsInt()
	require.True(t, ok)
	assert.Equal(t, 18789, port)

	enabled, ok := tree.Get("tools.elevated.enabled").AsBool()
	require.True(t, ok, "false must be present, not absent")
	assert.False(t, enabled)

	token := tree.Get("gateway.auth.token")
	assert.True(t, token.Present(), "empty string must be present")
	assert.False(t, token.NonEmptyString())

	assert.Equal(t, []string{"exec", "browser"}, tree.Get("tools.deny").Strings())

	ratio, ok := tree.Get("ratio").AsNumber()
	require.True(t, ok)
	assert.Equal(t, 0.5, ratio)

	_, ok = tree.Get("ratio").AsInt()
	assert.False(t, ok)
}

func TestGetAbsent(t *testing.T) {
	tree := mustParse(t, "openclaw.json", `{"gateway": {"bind": "loopback", "auth": null}, "list": [1, 2]}`)

	tests := []struct {
		name string
		path string
	}{
		{"missing top-level key", "channels"},
		{"missing nested key", "gateway.auth.mode"},
		{"traverse through scalar", "gateway.bind.mode"},
		{"traverse through list", "list.0"},
		{"explicit null", "gateway.auth"},
		{"empty path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tree.Get(tt.path)
			assert.False(t, v.Present())
			_, ok := v.AsString()
			assert.False(t, ok)
			assert.Equal(t, "<unset>", v.Display())
		})
	}
}

func TestNilTreeGet(t *testing.T) {
	var tree *Tree
	assert.False(t, tree.Get("gateway.bind").Present())
}

func TestNonObjectDocumentIsAllAbsent(t *testing.T) {
	for _, doc := range []string{`[1, 2, 3]`, `"gateway"`, `42`, `null`} {
		t.Run(doc, func(t *testing.T) {
			tree := mustParse(t, "openclaw.json", doc)
			assert.False(t, tree.Get("gateway.bind").Present())
			assert.NotEmpty(t, tree.Digest())
		})
	}
}

func TestValuesAreCopies(t *testing.T) {
	tree := mustParse(t, "openclaw.json", `{"tools": {"deny": ["exec"]}, "gateway": {"auth": {"mode": "token"}}}`)

	list, ok := tree.Get("tools.deny").AsList()
	require.True(t, ok)
	list[0] = "mutated"

	m, ok := tree.Get("gateway.auth").AsMap()
	require.True(t, ok)
	m["mode"] = "none"

	assert.Equal(t, []string{"exec"}, tree.Get("tools.deny").Strings())
	assert.Equal(t, "token", tree.Get("gateway.auth.mode").StringOr(""))
}

func TestParseJSONExtensions(t *testing.T) {
	tree := mustParse(t, "openclaw.json", `{
		// gateway settings
		"gateway": {
			"bind": "loopback", /* keep local */
			"url": "http://example.com/path", // slashes inside strings stay
		},
		"channels": {"telegram": {"allowFrom": ["*",],},},
	}`)

	assert.Equal(t, "loopback", tree.Get("gateway.bind").StringOr(""))
	assert.Equal(t, "http://example.com/path", tree.Get("gateway.url").StringOr(""))
	assert.Equal(t, []string{"*"}, tree.Get("channels.telegram.allowFrom").Strings())
}

func TestParseEscapedQuotes(t *testing.T) {
	tree := mustParse(t, "openclaw.json", `{"note": "say \"hi\" // not a comment", "x": 1}`)
	assert.Equal(t, `say "hi" // not a comment`, tree.Get("note").StringOr(""))
	assert.True(t, tree.Has("x"))
}

func TestParseYAML(t *testing.T) {
	tree := mustParse(t, "openclaw.yaml", `
gateway:
  bind: lan
  auth:
    mode: password
    password: hunter2hunter2
tools:
  elevated:
    enabled: true
1: numeric-key
`)

	assert.Equal(t, "lan", tree.Get("gateway.bind").StringOr(""))
	assert.True(t, tree.Get("gateway.auth.password").NonEmptyString())
	enabled, ok := tree.Get("tools.elevated.enabled").AsBool()
	require.True(t, ok)
	assert.True(t, enabled)
	assert.Equal(t, "numeric-key", tree.Get("1").StringOr(""))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("openclaw.json", []byte(`{"gateway": `))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))

	_, err = Parse("openclaw.yml", []byte("gateway: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
}

func TestParseRejectsTrailingData(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"stray brace and second object", "openclaw.json", `{"gateway":{"bind":"loopback"}} }{"gateway":{"bind":"lan"}} garbage`},
		{"second object", "openclaw.json", `{"gateway":{"bind":"loopback"}} {"gateway":{"bind":"lan"}}`},
		{"trailing word", "openclaw.json", `{"gateway":{"bind":"loopback"}} garbage`},
		{"second yaml document", "openclaw.yaml", "gateway:\n  bind: loopback\n---\ngateway:\n  bind: lan\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.file, []byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
		})
	}
}

func TestParseAllowsTrailingWhitespaceAndComments(t *testing.T) {
	tree, err := Parse("openclaw.json", []byte("{\"gateway\": {\"bind\": \"lan\"}}\n\n// end\n/* done */\n"))
	require.NoError(t, err)
	assert.Equal(t, "lan", tree.Get("gateway.bind").StringOr(""))

	tree, err = Parse("openclaw.yaml", []byte("---\ngateway:\n  bind: lan\n"))
	require.NoError(t, err)
	assert.Equal(t, "lan", tree.Get("gateway.bind").StringOr(""))
}

func TestParseKeepsRawBytes(t *testing.T) {
	data := []byte(`{"gateway": {"auth": {"token": "t0ken"}}}`)
	tree, err := Parse("openclaw.json", data)
	require.NoError(t, err)

	raw := tree.Bytes()
	assert.Equal(t, data, raw)
	raw[0] = 'X'
	data[1] = 'X'
	assert.Equal(t, byte('{'), tree.Bytes()[0], "Bytes returns a copy")
	assert.Equal(t, byte('"'), tree.Bytes()[1], "Parse keeps its own copy")

	assert.Nil(t, NewTree(map[string]any{}).Bytes())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeConfigNotFound))
	})

	t.Run("directory is unreadable", func(t *testing.T) {
		_, err := Load(dir)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeConfigUnreadable))
	})

	t.Run("loads and records source and digest", func(t *testing.T) {
		path := filepath.Join(dir, "openclaw.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"gateway": {"bind": "loopback"}}`), 0o600))

		first, err := Load(path)
		require.NoError(t, err)
		second, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, path, first.Source())
		assert.Len(t, first.Digest(), 64)
		assert.Equal(t, first.Digest(), second.Digest())
		assert.Len(t, first.ShortDigest(), 12)
	})
}

func TestNewTreeHasNoDigest(t *testing.T) {
	tree := NewTree(map[string]any{"gateway": map[any]any{"bind": "lan"}})
	assert.Equal(t, "lan", tree.Get("gateway.bind").StringOr(""))
	assert.Empty(t, tree.Digest())
	assert.Empty(t, tree.ShortDigest())
}

func TestValueDisplay(t *testing.T) {
	tree := NewTree(map[string]any{"s": "custom", "b": true, "n": 3})
	assert.Equal(t, `"custom"`, tree.Get("s").Display())
	assert.Equal(t, "true", tree.Get("b").Display())
	assert.Equal(t, "3", tree.Get("n").Display())
}
