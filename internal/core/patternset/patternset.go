// Package patternset loads the pattern lists an automaton is built from.
// Pattern ids are positions in Patterns; blank entries keep their slot so ids stay
// stable against the source file, and the automaton skips them
package patternset

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perr "acdat/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var embedded []byte

// Set is a named, versioned pattern list
type Set struct {
	Name     string   `json:"name" yaml:"name"`
	Version  int      `json:"version" yaml:"version"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Default returns the embedded demo set (he, she, his, hers)
func Default() Set {
	s, err := ParseYAML(embedded)
	if err != nil {
		panic("patternset: embedded default.yaml: " + err.Error())
	}
	return s
}

// ParseLines reads one pattern per line. Line terminators are stripped, nothing else
func ParseLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		out = append(out, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patternset: read lines")
	}
	return out, nil
}

// ParseJSON decodes {"name","version","patterns"}
func ParseJSON(b []byte) (Set, error) {
	var s Set
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Set{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patternset: parse json")
	}
	return s, nil
}

// ParseYAML decodes the same shape as ParseJSON from YAML
func ParseYAML(b []byte) (Set, error) {
	var s Set
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Set{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patternset: parse yaml")
	}
	return s, nil
}

// LoadFile picks a parser by extension: .json, .yaml/.yml, anything else is one
// pattern per line. Sets without a name take the file's base name
func LoadFile(path string) (Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeNotFound, "patternset: %s", path), "patterns_file")
		}
		return Set{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "patternset: read %s", path)
	}

	var s Set
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		s, err = ParseJSON(b)
	case ".yaml", ".yml":
		s, err = ParseYAML(b)
	default:
		s.Patterns, err = ParseLines(bytes.NewReader(b))
	}
	if err != nil {
		return Set{}, perr.WithOp(err, "load "+path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Dedupe returns a copy without exact duplicates, first occurrence wins.
// Ids of the result are positions in the new list
func (s Set) Dedupe() Set {
	seen := make(map[string]struct{}, len(s.Patterns))
	out := Set{Name: s.Name, Version: s.Version, Patterns: make([]string, 0, len(s.Patterns))}
	for _, p := range s.Patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out.Patterns = append(out.Patterns, p)
	}
	return out
}

// Len counts the non-empty patterns
func (s Set) Len() int {
	n := 0
	for _, p := range s.Patterns {
		if p != "" {
			n++
		}
	}
	return n
}
