package peek

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zcbuf/internal/common"
)

// FieldSpec names one field of a Layout and its type token, for example
// "u32le", "cstr" or "bytes:16".
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Layout is an ordered list of fields to walk through a buffer.
//
//	name: header
//	endian: be
//	fields:
//	  - {name: magic, type: u32}
//	  - {name: title, type: cstr}
type Layout struct {
	Name   string      `yaml:"name"`
	Endian string      `yaml:"endian"`
	Fields []FieldSpec `yaml:"fields"`
}

type compiledField struct {
	name  string
	token string
	field common.Field
}

// ParseLayout decodes a YAML layout and checks every field type.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(err, "failed to parse layout")
	}
	if _, err := l.compile(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a YAML layout from path.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read layout")
	}
	return ParseLayout(data)
}

// LayoutFromTokens builds a layout from bare type tokens, naming the fields
// by position.
func LayoutFromTokens(endian string, tokens []string) *Layout {
	l := &Layout{Endian: endian}
	for i, tok := range tokens {
		l.Fields = append(l.Fields, FieldSpec{Name: fmt.Sprintf("#%d", i), Type: tok})
	}
	return l
}

func (l *Layout) compile() ([]compiledField, error) {
	def, err := common.ParseEndian(l.Endian)
	if err != nil {
		return nil, errors.Wrapf(err, "layout %q", l.Name)
	}
	out := make([]compiledField, 0, len(l.Fields))
	for i, fs := range l.Fields {
		f, err := common.ParseField(fs.Type, def)
		if err != nil {
			return nil, errors.Wrapf(err, "layout %q field %d (%s)", l.Name, i, fs.Name)
		}
		out = append(out, compiledField{name: fs.Name, token: fs.Type, field: f})
	}
	return out, nil
}
