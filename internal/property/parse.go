package property

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"k8s.io/kube-openapi/pkg/validation/spec"
)

var (
	ErrInvalidDocument = errors.New("not a JSON document")
	ErrNotObject       = errors.New("schema root is not an object")
	ErrUnresolvedRef   = errors.New("unresolved $ref")
	ErrCircularRef     = errors.New("circular $ref")
)

var definitionSections = []string{"definitions", "$defs"}

type parser struct {
	root    gjson.Result
	history map[string]bool
}

// Load reads a JSON Schema file, see Parse.
func Load(path string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}
	nodes, err := Parse(data)
	return nodes, errors.Wrapf(err, "failed to parse schema %s", path)
}

// Parse reads the properties of a JSON Schema object document. Local
// $refs into definitions or $defs are inlined. Properties listed in
// required come first in that order, the rest follow document order.
func Parse(data []byte) ([]*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}

	p := &parser{
		root:    gjson.ParseBytes(data),
		history: map[string]bool{},
	}
	props, raw, key, err := p.resolve(p.root)
	if err != nil {
		return nil, err
	}
	if GetType(props) != "object" {
		return nil, ErrNotObject
	}
	if key != "" {
		p.history[key] = true
	}

	return p.children(props, raw)
}

func (p *parser) node(name string, raw gjson.Result) (*Node, error) {
	props, resolved, key, err := p.resolve(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "property %q", name)
	}

	b := CreatePropertyNodeBuilder(name, props)
	if !b.node.Nested() {
		return b.Build(), nil
	}

	if key != "" {
		p.history[key] = true
		defer delete(p.history, key)
	}
	children, err := p.children(props, resolved)
	if err != nil {
		return nil, errors.Wrapf(err, "property %q", name)
	}

	return b.WithChildren(children).Build(), nil
}

func (p *parser) children(props *spec.SchemaProps, raw gjson.Result) ([]*Node, error) {
	var names []string
	raws := map[string]gjson.Result{}
	raw.Get("properties").ForEach(func(k, v gjson.Result) bool {
		names = append(names, k.String())
		raws[k.String()] = v
		return true
	})

	ordered := make([]string, 0, len(names))
	seen := map[string]bool{}
	candidates := append(append([]string{}, props.Required...), names...)
	for _, name := range candidates {
		if _, ok := raws[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		ordered = append(ordered, name)
	}

	result := make([]*Node, 0, len(ordered))
	for _, name := range ordered {
		child, err := p.node(name, raws[name])
		if err != nil {
			return nil, err
		}
		result = append(result, child)
	}

	return result, nil
}

// resolve decodes raw and follows its $ref. key is the definition name
// when a ref was followed.
func (p *parser) resolve(raw gjson.Result) (props *spec.SchemaProps, resolved gjson.Result, key string, err error) {
	props, err = decode(raw)
	if err != nil {
		return nil, raw, "", err
	}
	if !HasRef(props) {
		return props, raw, "", nil
	}
	key = GetRefKey(props)
	if p.history[key] {
		return nil, raw, key, errors.Wrap(ErrCircularRef, key)
	}

	def, ok := p.definition(key)
	if !ok {
		return nil, raw, key, errors.Wrap(ErrUnresolvedRef, key)
	}
	props, err = decode(def)
	if err != nil {
		return nil, def, key, err
	}

	return props, def, key, nil
}

func (p *parser) definition(key string) (gjson.Result, bool) {
	var found gjson.Result
	p.root.ForEach(func(section, defs gjson.Result) bool {
		if !isDefinitionSection(section.String()) {
			return true
		}
		defs.ForEach(func(name, def gjson.Result) bool {
			if name.String() == key {
				found = def
				return false
			}
			return true
		})
		return !found.Exists()
	})

	return found, found.Exists()
}

func isDefinitionSection(name string) bool {
	for _, section := range definitionSections {
		if name == section {
			return true
		}
	}
	return false
}

func decode(raw gjson.Result) (*spec.SchemaProps, error) {
	var schema spec.Schema
	if err := json.Unmarshal([]byte(raw.Raw), &schema); err != nil {
		return nil, errors.Wrap(err, "failed to decode schema")
	}
	return &schema.SchemaProps, nil
}
