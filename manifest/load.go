package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/ifacereg/internal/ctxlog"
	"github.com/vk/ifacereg/internal/fsutil"
)

// rootSchema is the top-level structure of a manifest file: one or more
// 'interface' blocks.
type rootSchema struct {
	Interfaces []*hclInterface `hcl:"interface,block"`
}

// hclInterface represents a single 'interface' block for decoding purposes.
type hclInterface struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var interfaceBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "implementation", LabelNames: []string{"type"}},
	},
}

var implementationBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "path"},
		{Name: "constructor"},
	},
}

// Load recursively parses every .hcl file under root and merges the declared
// interface blocks into a single Manifest. Interface blocks for the same name
// may be split across files; implementation blocks may not repeat.
func Load(ctx context.Context, root string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifests.", "path", root)

	paths, err := fsutil.HCLFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk manifest directory %s: %w", root, err)
	}
	if len(paths) == 0 {
		logger.Warn("No .hcl manifest files found in path.", "path", root)
	}

	m := New()
	parser := hclparse.NewParser()
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
		}
		if err := mergeFile(m, file, path); err != nil {
			return nil, err
		}
		logger.Debug("Loaded manifest file.", "file", path)
	}

	logger.Debug("Manifests loaded.", "interfaces", len(m.Interfaces))
	return m, nil
}

func mergeFile(m *Manifest, file *hcl.File, path string) error {
	schema := &rootSchema{}
	if diags := gohcl.DecodeBody(file.Body, nil, schema); diags.HasErrors() {
		return fmt.Errorf("invalid manifest %s: %w", path, diags)
	}

	for _, block := range schema.Interfaces {
		iface := m.Interfaces[block.Name]
		if iface == nil {
			iface = &Interface{
				Name:            block.Name,
				Implementations: make(map[string]*Implementation),
			}
			m.Interfaces[block.Name] = iface
		}

		content, diags := block.Body.Content(interfaceBodySchema)
		if diags.HasErrors() {
			return fmt.Errorf("invalid interface block %q in %s: %w", block.Name, path, diags)
		}

		if attr, ok := content.Attributes["description"]; ok {
			desc, err := stringValue(attr)
			if err != nil {
				return fmt.Errorf("interface %q in %s: %w", block.Name, path, err)
			}
			iface.Description = desc
		}

		for _, implBlock := range content.Blocks {
			impl, err := decodeImplementation(implBlock, path)
			if err != nil {
				return fmt.Errorf("interface %q in %s: %w", block.Name, path, err)
			}
			if _, exists := iface.Implementations[impl.Type]; exists {
				return fmt.Errorf("interface %q: implementation %q declared twice (second time in %s)", block.Name, impl.Type, path)
			}
			iface.Implementations[impl.Type] = impl
		}
	}
	return nil
}

func decodeImplementation(block *hcl.Block, path string) (*Implementation, error) {
	impl := &Implementation{
		Type:       block.Labels[0],
		SourceFile: path,
	}

	content, diags := block.Body.Content(implementationBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("implementation %q: %w", impl.Type, diags)
	}

	if attr, ok := content.Attributes["path"]; ok {
		p, err := stringValue(attr)
		if err != nil {
			return nil, fmt.Errorf("implementation %q: %w", impl.Type, err)
		}
		impl.Path = p
	}

	if attr, ok := content.Attributes["constructor"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("implementation %q: attribute %q: %w", impl.Type, attr.Name, diags)
		}
		if !val.Type().Equals(cty.Bool) {
			return nil, fmt.Errorf("implementation %q: attribute %q must be a bool, got %s", impl.Type, attr.Name, val.Type().FriendlyName())
		}
		impl.Constructor = val.True()
	}

	return impl, nil
}

// stringValue evaluates an attribute expression and requires a string result.
func stringValue(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("attribute %q: %w", attr.Name, diags)
	}
	if !val.Type().Equals(cty.String) {
		return "", fmt.Errorf("attribute %q must be a string, got %s", attr.Name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}
