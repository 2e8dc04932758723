// Package rules loads conversion-rule files and turns them into batches
// the engine can merge. Files are TOML or YAML; both decode into the same
// shape. Pointer-sized integer spellings (isize, usize) are resolved to
// fixed-width types for the configured target pointer width before the
// batch is built, so the engine itself never sees them.
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/typemap"
	"github.com/ecumene/rust-swig/types"
)

// File is the decoded shape of one rule file.
type File struct {
	Types    []TypeDecl    `toml:"types" yaml:"types"`
	Rules    []RuleDecl    `toml:"rules" yaml:"rules"`
	Generics []GenericDecl `toml:"generics" yaml:"generics"`
	Utils    []string      `toml:"utils" yaml:"utils"`
}

// TypeDecl registers one type, optionally tagging capabilities and naming
// its foreign counterpart.
type TypeDecl struct {
	Type       string   `toml:"type" yaml:"type"`
	Implements []string `toml:"implements" yaml:"implements"`
	Foreign    string   `toml:"foreign" yaml:"foreign"`
}

// RuleDecl is one concrete conversion rule.
type RuleDecl struct {
	From       string `toml:"from" yaml:"from"`
	To         string `toml:"to" yaml:"to"`
	Template   string `toml:"template" yaml:"template"`
	Dependency string `toml:"dependency" yaml:"dependency"`
}

// GenericDecl is one parametric conversion rule.
type GenericDecl struct {
	Param       string   `toml:"param" yaml:"param"`
	From        string   `toml:"from" yaml:"from"`
	To          string   `toml:"to" yaml:"to"`
	Requires    []string `toml:"requires" yaml:"requires"`
	Template    string   `toml:"template" yaml:"template"`
	Dependency  string   `toml:"dependency" yaml:"dependency"`
	ForeignHint string   `toml:"foreign_hint" yaml:"foreign_hint"`
}

// Load reads and validates a rule file. The format follows the file
// extension: .toml, .yaml or .yml.
func Load(path string, pointerWidth int) (*typemap.RuleBatch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read rule file %s", path)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &f)
	default:
		return nil, errors.Newf("rule file %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode rule file %s", path)
	}

	return Build(path, &f, pointerWidth)
}

// Build validates a decoded rule file and assembles the mergeable batch.
func Build(sourceID string, f *File, pointerWidth int) (*typemap.RuleBatch, error) {
	batch := &typemap.RuleBatch{Utils: f.Utils}

	for i, td := range f.Types {
		if td.Type == "" {
			return nil, errors.Newf("%s: types[%d]: missing type", sourceID, i)
		}
		batch.Nodes = append(batch.Nodes, typemap.BatchNode{
			Expr:       types.Parse(resolvePointerWidth(td.Type, pointerWidth)),
			Implements: td.Implements,
			Foreign:    td.Foreign,
		})
	}

	for i, rd := range f.Rules {
		if rd.From == "" || rd.To == "" {
			return nil, errors.Newf("%s: rules[%d]: missing from/to", sourceID, i)
		}
		if err := typemap.ValidateTemplate(rd.Template); err != nil {
			return nil, errors.Wrapf(err, "%s: rules[%d]", sourceID, i)
		}
		batch.Edges = append(batch.Edges, typemap.BatchEdge{
			From:       types.Parse(resolvePointerWidth(rd.From, pointerWidth)),
			To:         types.Parse(resolvePointerWidth(rd.To, pointerWidth)),
			Template:   rd.Template,
			Dependency: rd.Dependency,
		})
	}

	for i, gd := range f.Generics {
		if gd.Param == "" || gd.From == "" || gd.To == "" {
			return nil, errors.Newf("%s: generics[%d]: missing param/from/to", sourceID, i)
		}
		if err := typemap.ValidateTemplate(gd.Template); err != nil {
			return nil, errors.Wrapf(err, "%s: generics[%d]", sourceID, i)
		}
		rule := typemap.NewGenericRule(gd.Param,
			resolvePointerWidth(gd.From, pointerWidth),
			resolvePointerWidth(gd.To, pointerWidth),
			gd.Template)
		rule.Requires = gd.Requires
		rule.Dependency = gd.Dependency
		rule.ForeignHint = gd.ForeignHint
		batch.Generics = append(batch.Generics, rule)
	}

	return batch, nil
}

// resolvePointerWidth rewrites isize/usize tokens to the fixed-width
// integer types of the target, leaving longer identifiers alone.
func resolvePointerWidth(typeName string, pointerWidth int) string {
	signed, unsigned := "i64", "u64"
	if pointerWidth == 32 {
		signed, unsigned = "i32", "u32"
	}
	out := replaceToken(typeName, "isize", signed)
	return replaceToken(out, "usize", unsigned)
}

func replaceToken(s, token, repl string) string {
	var b strings.Builder
	for {
		i := indexOfToken(s, token)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(repl)
		s = s[i+len(token):]
	}
}

func indexOfToken(s, token string) int {
	for start := 0; ; {
		i := strings.Index(s[start:], token)
		if i < 0 {
			return -1
		}
		i += start
		beforeOK := i == 0 || !isIdentByte(s[i-1])
		afterOK := i+len(token) == len(s) || !isIdentByte(s[i+len(token)])
		if beforeOK && afterOK {
			return i
		}
		start = i + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
