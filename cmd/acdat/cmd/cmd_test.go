package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	kit "acdat/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScan_DefaultSetFromArgs(t *testing.T) {
	out, err := run(t, "", "scan", "u", "SHERS")
	require.NoError(t, err)
	kit.MustContain(t, out, "text: ushers")
	kit.MustContain(t, out, "end=4 state=")
	kit.MustContain(t, out, "he(0) she(1)")
	kit.MustContain(t, out, "hers(3)")
	kit.MustContain(t, out, `#3 "hers" [2,6)`)
}

func TestScan_TraceFromStdin(t *testing.T) {
	out, err := run(t, "ushers\n", "scan", "--text", "-", "--trace")
	require.NoError(t, err)
	kit.MustContain(t, out, "1: 0 --u--> 0")
	kit.MustContain(t, out, "output: he(0) she(1)")
}

func TestScan_JSONWithPatternFile(t *testing.T) {
	path := kit.WriteFile(t, "words.txt", "c++\ngo\n")
	out, err := run(t, "", "scan", "-p", path, "--alphabet", "ascii", "--json", "I go, C++!")
	require.NoError(t, err)

	var res scanResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "words", res.Set)
	assert.Equal(t, "igo,c++!", res.Normalized)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, [][2]int{{4, 7}}, res.Hits[0].Spans)
	assert.Equal(t, [][2]int{{1, 3}}, res.Hits[1].Spans)
}

func TestScan_Errors(t *testing.T) {
	_, err := run(t, "", "scan")
	assert.ErrorContains(t, err, "no text")

	_, err = run(t, "", "scan", "--alphabet", "greek", "x")
	assert.ErrorContains(t, err, "unknown alphabet")

	_, err = run(t, "", "scan", "--strict", "ush3rs")
	assert.ErrorContains(t, err, "outside the latin alphabet")

	_, err = run(t, "", "scan", "-p", "/does/not/exist.txt", "x")
	assert.Error(t, err)
}

func TestScan_SingleHop(t *testing.T) {
	// "c" is only reachable by walking two failure links out of "ab"
	path := kit.WriteFile(t, "p.txt", "abx\nby\nc\n")

	out, err := run(t, "", "scan", "-p", path, "--json", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, `"term": "c"`)

	out, err = run(t, "", "scan", "-p", path, "--json", "--single-hop", "abc")
	require.NoError(t, err)
	assert.NotContains(t, out, `"term": "c"`)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "", "inspect")
	require.NoError(t, err)
	kit.MustContain(t, out, "states:    10")
	kit.MustContain(t, out, "labels:    ^")
	kit.MustContain(t, out, "occupancy:")

	out, err = run(t, "", "inspect", "--json")
	require.NoError(t, err)
	var res inspectResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10, res.Stats.States)
	assert.Len(t, res.Tables.Fail, 10)

	_, err = run(t, "", "inspect", "extra")
	assert.Error(t, err)
}
