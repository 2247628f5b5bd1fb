// Package config loads the gateway configuration document into an immutable
// snapshot and resolves dotted paths against it.
//
// A snapshot is read once per run. Checks only ever see it through Get, which
// never fails: a missing segment, a null, or a non-mapping intermediate all
// resolve to an absent Value.
package config

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Tree is an immutable configuration snapshot.
type Tree struct {
	root   map[string]any
	source string
	digest string
	raw    []byte
}

// NewTree builds a snapshot from an already decoded document. A document
// that is not a mapping (array, scalar, null) yields a snapshot in which every
// path is absent.
func NewTree(doc any) *Tree {
	root, _ := normalize(doc).(map[string]any)
	if root == nil {
		root = map[string]any{}
	}
	return &Tree{root: root}
}

// Get resolves a dotted path such as "gateway.auth.mode".
func (t *Tree) Get(path string) Value {
	if t == nil || path == "" {
		return Absent
	}

	var cur any = t.root
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return Absent
		}
		next, ok := m[seg]
		if !ok {
			return Absent
		}
		cur = next
	}

	if cur == nil {
		return Absent
	}
	return present(cur)
}

// Has reports whether path resolves to a present value.
func (t *Tree) Has(path string) bool {
	return t.Get(path).Present()
}

// Source is the file the snapshot was loaded from, if any.
func (t *Tree) Source() string {
	return t.source
}

// Digest is the BLAKE3 hash of the raw bytes the snapshot was parsed from.
// It is empty for snapshots built with NewTree.
func (t *Tree) Digest() string {
	return t.digest
}

// Bytes returns a copy of the raw bytes the snapshot was parsed from, or nil
// for snapshots built with NewTree. Content checks scan these rather than
// re-reading the file, so every check sees the same snapshot.
func (t *Tree) Bytes() []byte {
	if t == nil || t.raw == nil {
		return nil
	}
	return bytes.Clone(t.raw)
}

// ShortDigest returns the first 12 hex characters of Digest.
func (t *Tree) ShortDigest() string {
	if len(t.digest) < 12 {
		return t.digest
	}
	return t.digest[:12]
}

func digestOf(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// normalize converts decoder output into map[string]any / []any trees.
// yaml.v3 produces map[any]any for mappings with non-string keys.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return t
	}
}
