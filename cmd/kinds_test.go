package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runKindsCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flags keep their values between executions
	for _, flag := range []string{"keep-going", "dump"} {
		require.NoError(t, KindsCmd.Flags().Set(flag, "false"))
	}
	out := &bytes.Buffer{}
	KindsCmd.SetArgs(args)
	KindsCmd.SetOut(out)
	KindsCmd.SetErr(&bytes.Buffer{})
	err := KindsCmd.Execute()
	return out.String(), err
}

const declarations = `types:
  - name: Pair
    params: [a, b]
    type: {record: {x: a, y: b}}
  - name: Wrap
    params: [f, a]
    type: {record: {inner: {app: [f, a]}}}
  - name: Tree
    params: [a]
    type:
      variant:
        Leaf: [a]
        Node: [{app: [Forest, a]}]
  - name: Forest
    params: [a]
    type: {app: [Array, {app: [Tree, a]}]}
  - name: Implicit
    type: {function: [a, b]}
`

func TestKinds(t *testing.T) {
	out, err := runKindsCmd(t, writeFile(t, "decls.yaml", declarations))
	require.NoError(t, err)
	assert.Equal(t, `Pair : Type -> Type -> Type
  a : Type
  b : Type
Wrap : (Type -> Type) -> Type -> Type
  f : Type -> Type
  a : Type
Tree : Type -> Type
  a : Type
Forest : Type -> Type
  a : Type
Implicit : Type -> Type -> Type
  a : Type
  b : Type
`, out)
}

func TestKindsDump(t *testing.T) {
	src := "types:\n  - {name: Box, params: [a], type: {record: {x: a}}}\n"
	out, err := runKindsCmd(t, "--dump", writeFile(t, "box.yaml", src))
	require.NoError(t, err)
	assert.Contains(t, out, "Box : Type -> Type\n")
	assert.Contains(t, out, "&types.Alias{")
	assert.Contains(t, out, `symbol.New("Box")`)
}

const badDeclarations = `types:
  - name: Bad1
    type: {app: [Int, Int]}
  - name: Bad2
    type: {app: [Int, Int]}
  - name: Good
    type: String
`

func TestKindsFailFast(t *testing.T) {
	out, err := runKindsCmd(t, writeFile(t, "bad.yaml", badDeclarations))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml:3:23: (E001) kind mismatch")
	assert.Contains(t, err.Error(), "but found 'Type'")
	assert.NotContains(t, err.Error(), "bad.yaml:5:23")
	assert.Empty(t, out)
}

func TestKindsKeepGoing(t *testing.T) {
	out, err := runKindsCmd(t, "-k", writeFile(t, "bad.yaml", badDeclarations))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml:3:23: (E001) kind mismatch")
	assert.Contains(t, err.Error(), "bad.yaml:5:23: (E001) kind mismatch")
	assert.Equal(t, "Good : Type\n", out)
}

func TestKindsUndefinedType(t *testing.T) {
	src := "types:\n  - {name: Box, type: {record: {x: Missing}}}\n"
	_, err := runKindsCmd(t, writeFile(t, "missing.yaml", src))
	assert.ErrorContains(t, err, "(E002) type 'Missing' is not defined")
}

func TestKindsMissingFile(t *testing.T) {
	_, err := runKindsCmd(t, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "could not read")
}

func TestKindsLoadError(t *testing.T) {
	_, err := runKindsCmd(t, writeFile(t, "bad.yaml", "types: Int"))
	assert.ErrorContains(t, err, "'types' should be a list of declarations")
}

func TestSession(t *testing.T) {
	out := &bytes.Buffer{}
	s := newSession(out)
	handle := func(line string) string {
		out.Reset()
		assert.False(t, s.handle(line))
		return out.String()
	}

	assert.Equal(t, "Array Int : Type\n", handle("{app: [Array, Int]}"))
	assert.Equal(t, "Array : Type -> Type\n", handle("Array"))
	assert.Equal(t, "-> : Type -> Type -> Type\n", handle("'->'"))
	assert.Equal(t, "a : Type\n", handle("a"))
	assert.Equal(t, "{ x : Int } : Type\n", handle("{record: {x: Int}}"))

	assert.Equal(t, "Box : (Type -> Type) -> Type\n  f : Type -> Type\n", handle(":decl {name: Box, params: [f], type: {app: [f, Int]}}"))
	assert.Equal(t, "Box : (Type -> Type) -> Type\n", handle("Box"))
	assert.Equal(t, "Box Array : Type\n", handle("{app: [Box, Array]}"))
	assert.Contains(t, handle("{app: [Box, Int]}"), ":1:13: (E001) kind mismatch: expected 'Type -> Type', but found 'Type'")
	assert.Equal(t, "Box : (Type -> Type) -> Type\n  f : Type -> Type\n", handle(":env"))

	assert.Contains(t, handle(":reset"), "declarations reset.")
	assert.Empty(t, handle(":env"))
	assert.Contains(t, handle("Box"), "(E002) type 'Box' is not defined")

	assert.Contains(t, handle(":nope"), "unknown command")
	assert.Contains(t, handle(":decl"), "usage: :decl DECLARATION")
	assert.Contains(t, handle(":decl {name: box, type: Int}"), "a declared type should be an upper-case identifier")
	assert.Contains(t, handle("{tuple: [Int]}"), "unknown type form 'tuple'")
	assert.Contains(t, handle(":help"), ":decl DECLARATION")

	assert.True(t, s.handle(":quit"))
	assert.True(t, s.handle(":exit"))
}

func TestSessionLoad(t *testing.T) {
	out := &bytes.Buffer{}
	s := newSession(out)
	assert.False(t, s.handle(":load "+writeFile(t, "decls.yaml", declarations)))
	assert.Contains(t, out.String(), "Forest : Type -> Type\n")

	out.Reset()
	s.handle("{app: [Wrap, Array, Int]}")
	assert.Equal(t, "Wrap Array Int : Type\n", out.String())

	out.Reset()
	s.handle(":load " + filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Contains(t, out.String(), "cannot read")
}

func TestSessionKeepsCheckedDeclarations(t *testing.T) {
	out := &bytes.Buffer{}
	s := newSession(out)
	s.handle(":load " + writeFile(t, "bad.yaml", badDeclarations))
	assert.Contains(t, out.String(), "Good : Type\n")
	assert.Contains(t, out.String(), "(E001) kind mismatch")

	out.Reset()
	s.handle(":env")
	assert.Equal(t, "Good : Type\n", out.String())
}
