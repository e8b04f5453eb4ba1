// Package grammar compiles YAML grammar documents into descriptor trees.
//
// A document has a root node and optional named definitions that nodes can refer to:
//
//	root:
//	  type: tuple
//	  fields:
//	    - {type: expect, of: rawstring, value: MAGIC}
//	    - {type: counted, label: Tags, of: string}
//	    - {type: array, count: 11, of: {ref: record}}
//	defs:
//	  record: {type: tuple, dense: true, fields: [short, short, int]}
//
// A node written as a bare scalar, like "int", is a node of that type with no other options.
package grammar

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stewi1014/savedump/desc"
)

// Document is a parsed grammar document.
type Document struct {
	Root *Node            `yaml:"root"`
	Defs map[string]*Node `yaml:"defs"`
}

// Node is one descriptor in a grammar document. Which fields apply depends on Type.
type Node struct {
	Type string `yaml:"type"`

	// Composite rendering options; valid on tuple, array, named and counted.
	Label string `yaml:"label"`
	Dense bool   `yaml:"dense"`

	Of      *Node       `yaml:"of"`
	Fields  []*Node     `yaml:"fields"`
	Names   []string    `yaml:"names"`
	Count   int         `yaml:"count"`
	Size    int         `yaml:"size"`
	Bound   *int        `yaml:"bound"`
	Value   interface{} `yaml:"value"`
	Text    string      `yaml:"text"`
	Ref     string      `yaml:"ref"`
	On      *Node       `yaml:"on"`
	Cases   []*CaseNode `yaml:"cases"`
	Default *Node       `yaml:"default"`
}

// CaseNode is one case of a switch node.
type CaseNode struct {
	Value interface{} `yaml:"value"`
	Node  *Node       `yaml:"node"`
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting bare scalars as type names.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Type = value.Value
		return nil
	}

	type plain Node
	return value.Decode((*plain)(n))
}

// Parse parses a grammar document.
func Parse(doc []byte) (*Document, error) {
	d := new(Document)
	if err := yaml.Unmarshal(doc, d); err != nil {
		return nil, errors.Wrap(err, "parsing grammar")
	}
	if d.Root == nil {
		return nil, errors.New("grammar has no root")
	}
	return d, nil
}

// Compile parses and compiles a grammar document.
func Compile(doc []byte) (desc.Descriptor, error) {
	d, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return d.Compile()
}

// Compile compiles the document into a descriptor tree.
// Definitions are compiled once, however many times they're referred to.
func (d *Document) Compile() (desc.Descriptor, error) {
	c := &compiler{
		defs:      d.Defs,
		compiled:  make(map[string]desc.Descriptor),
		compiling: make(map[string]bool),
	}
	return c.compile(d.Root, "root")
}

type compiler struct {
	defs      map[string]*Node
	compiled  map[string]desc.Descriptor
	compiling map[string]bool
}

func (c *compiler) ref(name, path string) (desc.Descriptor, error) {
	if d, ok := c.compiled[name]; ok {
		return d, nil
	}
	if c.compiling[name] {
		return nil, errors.Errorf("%s: definition %q refers to itself", path, name)
	}

	node, ok := c.defs[name]
	if !ok {
		return nil, errors.Errorf("%s: no definition %q", path, name)
	}

	c.compiling[name] = true
	d, err := c.compile(node, "defs."+name)
	delete(c.compiling, name)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: in definition %q", path, name)
	}

	c.compiled[name] = d
	return d, nil
}

func (c *compiler) child(n *Node, path, field string) (desc.Descriptor, error) {
	if n == nil {
		return nil, errors.Errorf("%s: missing %q", path, field)
	}
	return c.compile(n, path+"."+field)
}

func (c *compiler) compile(n *Node, path string) (desc.Descriptor, error) {
	if n == nil {
		return nil, errors.Errorf("%s: empty node", path)
	}

	typ := n.Type
	if typ == "" && n.Ref != "" {
		typ = "ref"
	}

	switch typ {
	case "tuple", "array", "named", "counted":
	default:
		if n.Dense || n.Label != "" {
			return nil, errors.Errorf("%s: dense and label are only valid on composites, not %q", path, typ)
		}
	}

	switch typ {
	case "byte":
		return desc.Byte, nil
	case "short":
		return desc.Short, nil
	case "int":
		return desc.Int, nil
	case "rawstring":
		return desc.RawString, nil
	case "string":
		return desc.Text, nil
	case "rest":
		return desc.Rest, nil

	case "bytes", "zeros":
		if n.Size < 0 {
			return nil, errors.Errorf("%s: negative size %v", path, n.Size)
		}
		if typ == "zeros" {
			return desc.ExpectZeros(n.Size), nil
		}
		return desc.Bytes(n.Size), nil

	case "note":
		return desc.Note(n.Text), nil
	case "checkpoint":
		return desc.Checkpoint(n.Text), nil

	case "ref":
		return c.ref(n.Ref, path)

	case "skip":
		elem, err := c.child(n.Of, path, "of")
		if err != nil {
			return nil, err
		}
		return desc.Skip(elem), nil

	case "expect":
		elem, err := c.child(n.Of, path, "of")
		if err != nil {
			return nil, err
		}
		if n.Value == nil {
			return nil, errors.Errorf("%s: missing \"value\"", path)
		}
		return desc.Expect(elem, n.Value), nil

	case "counted":
		elem, err := c.child(n.Of, path, "of")
		if err != nil {
			return nil, err
		}
		d := desc.NewCounted(elem).Label(n.Label)
		if n.Bound != nil {
			if *n.Bound < 0 {
				return nil, errors.Errorf("%s: negative bound %v", path, *n.Bound)
			}
			d = d.Bound(*n.Bound)
		}
		if n.Dense {
			d = d.Dense()
		}
		return d, nil

	case "array":
		if n.Count < 0 {
			return nil, errors.Errorf("%s: negative count %v", path, n.Count)
		}
		elem, err := c.child(n.Of, path, "of")
		if err != nil {
			return nil, err
		}
		d := desc.NewArray(n.Count, elem).Label(n.Label)
		if n.Dense {
			d = d.Dense()
		}
		return d, nil

	case "named":
		elem, err := c.child(n.Of, path, "of")
		if err != nil {
			return nil, err
		}
		d := desc.NewNamed(n.Names, elem).Label(n.Label)
		if n.Dense {
			d = d.Dense()
		}
		return d, nil

	case "tuple":
		elems := make([]desc.Descriptor, len(n.Fields))
		for i, f := range n.Fields {
			elem, err := c.compile(f, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		d := desc.NewTuple(elems...).Label(n.Label)
		if n.Dense {
			d = d.Dense()
		}
		return d, nil

	case "switch":
		on, err := c.child(n.On, path, "on")
		if err != nil {
			return nil, err
		}
		cases := make([]desc.Case, len(n.Cases))
		for i, cn := range n.Cases {
			casePath := fmt.Sprintf("%s.cases[%d]", path, i)
			if cn == nil || cn.Value == nil {
				return nil, errors.Errorf("%s: missing \"value\"", casePath)
			}
			elem, err := c.child(cn.Node, casePath, "node")
			if err != nil {
				return nil, err
			}
			cases[i] = desc.Case{Key: cn.Value, Desc: elem}
		}
		d := desc.NewSwitch(on, cases...)
		if n.Default != nil {
			def, err := c.compile(n.Default, path+".default")
			if err != nil {
				return nil, err
			}
			d = d.Default(def)
		}
		return d, nil

	case "":
		return nil, errors.Errorf("%s: node has no type", path)
	default:
		return nil, errors.Errorf("%s: unknown node type %q", path, typ)
	}
}
