package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tree-nesting/internal/filter"
	"tree-nesting/internal/mapping"
	"tree-nesting/internal/nesting"
)

// ErrUnknownType is returned when a root or embedding target is not declared.
var ErrUnknownType = errors.New("unknown type")

// Builder builds the field trees of the root types of a mapping.
// A Builder is safe for concurrent use: every build pass gets its own
// trackers.
type Builder struct {
	mapping *mapping.MappingFile
	cfg     Config
}

// NewBuilder creates a builder for a validated mapping.
func NewBuilder(mf *mapping.MappingFile, cfg Config) *Builder {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Builder{mapping: mf, cfg: cfg}
}

// BuildAll builds an index for every root type. Roots are built concurrently,
// each pass with its own trackers; the result follows the order of the roots.
func (b *Builder) BuildAll(ctx context.Context) ([]*Index, error) {
	indexes := make([]*Index, len(b.mapping.Roots))

	eg, ctx := errgroup.WithContext(ctx)

	for i, root := range b.mapping.Roots {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			idx, err := b.Build(root)
			if err != nil {
				return err
			}

			indexes[i] = idx

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return indexes, nil
}

// Build walks the root type under the unrestricted root context.
func (b *Builder) Build(root string) (*Index, error) {
	td := b.mapping.Type(root)
	if td == nil {
		return nil, fmt.Errorf("build %s: %w %q", root, ErrUnknownType, root)
	}

	p := &pass{
		b:        b,
		log:      b.cfg.Logger.With("root", root),
		trackers: make(map[ElementRef]*trackedElement),
	}

	tree := newRoot()

	if err := p.walkFields(nesting.Root(), td.Name, "", td.Fields, tree); err != nil {
		return nil, fmt.Errorf("build %s: %w", root, err)
	}

	tree.prune()

	idx := &Index{
		Root:            root,
		Tree:            tree,
		elements:        p.order,
		suggestionLimit: b.cfg.SuggestionLimit,
	}

	p.log.Debug("built index", "fields", len(idx.Fields()), "embeddings", len(p.order))

	return idx, nil
}

// trackedElement is the per-pass state of one embedding declaration.
type trackedElement struct {
	ref     ElementRef
	tracker *filter.PathTracker
	// reached counts the occurrences that were composed.
	reached int
	// visits counts every occurrence, reached or not.
	visits int
}

// pass is one build of one root type.
type pass struct {
	b        *Builder
	log      *slog.Logger
	trackers map[ElementRef]*trackedElement
	order    []*trackedElement
}

func (p *pass) element(ref ElementRef, def filter.Definition) *trackedElement {
	te, ok := p.trackers[ref]
	if !ok {
		te = &trackedElement{ref: ref, tracker: filter.NewPathTracker(def)}
		p.trackers[ref] = te
		p.order = append(p.order, te)
	}

	return te
}

// walkFields walks the fields of a type or of an object field. parent is nil
// below an excluded object: the fields are still visited so that they get
// recorded, but nothing is materialized.
func (p *pass) walkFields(ctx *nesting.Context, typeName, fieldPath string, fields []mapping.FieldDef, parent *Node) error {
	for i := range fields {
		f := &fields[i]

		var err error

		switch f.Kind {
		case mapping.FieldKindValue:
			err = p.walkValue(ctx, f, parent)
		case mapping.FieldKindObject:
			err = p.walkObject(ctx, typeName, joinPath(fieldPath, f.Name), f, parent)
		case mapping.FieldKindEmbedded:
			err = p.walkEmbedded(ctx, ElementRef{Type: typeName, Field: joinPath(fieldPath, f.Name)}, f, parent)
		case mapping.FieldKindDynamic:
			err = p.walkDynamic(ctx, f, parent)
		default:
			err = fmt.Errorf("%s#%s: invalid field kind %q", typeName, joinPath(fieldPath, f.Name), f.Kind)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (p *pass) walkValue(ctx *nesting.Context, f *mapping.FieldDef, parent *Node) error {
	node := nesting.NestLeaf(ctx, f.Name, func(name string, inclusion nesting.Inclusion) *Node {
		if parent == nil || !inclusion.IsIncluded() {
			return nil
		}

		return &Node{Name: name, Kind: NodeValue, ValueType: f.Type}
	})

	if node == nil {
		return nil
	}

	return parent.add(node)
}

func (p *pass) walkObject(ctx *nesting.Context, typeName, fieldPath string, f *mapping.FieldDef, parent *Node) error {
	return nesting.NestComposite(ctx, f.Name, func(name string, inclusion nesting.Inclusion, nested *nesting.Context) error {
		var obj *Node

		if parent != nil && inclusion.IsIncluded() {
			var err error
			if obj, err = parent.object(name); err != nil {
				return err
			}
		}

		return p.walkFields(nested, typeName, fieldPath, f.Fields, obj)
	})
}

func (p *pass) walkDynamic(ctx *nesting.Context, f *mapping.FieldDef, parent *Node) error {
	node := nesting.NestUnfiltered(ctx, func(inclusion nesting.Inclusion, prefix string) *Node {
		if parent == nil || !inclusion.IsIncluded() {
			return nil
		}

		return &Node{Name: prefix + f.Dynamic.Pattern, Kind: NodeTemplate, ValueType: f.Dynamic.Type}
	})

	if node == nil {
		return nil
	}

	return parent.add(node)
}

func (p *pass) walkEmbedded(ctx *nesting.Context, ref ElementRef, f *mapping.FieldDef, parent *Node) error {
	e := f.Embedded

	target := p.b.mapping.Type(e.Target)
	if target == nil {
		return fmt.Errorf("%s: %w %q", ref, ErrUnknownType, e.Target)
	}

	def := e.Definition()
	te := p.element(ref, def)
	te.visits++

	prefix := e.RelativePrefix(f.Name)
	chain := &objectChain{pass: p, at: parent, target: target}

	walkErr, reached, err := nesting.NestComposed[error](ctx, ref, prefix, def, te.tracker, chain, p.b.cfg.NewCycleError)
	if err != nil {
		return err
	}

	p.log.Debug("embedding",
		"element", ref,
		"path", ctx.AncestorPath()+prefix,
		"filter", def,
		"reached", reached,
	)

	if reached {
		te.reached++
	}

	return walkErr
}

// objectChain materializes the objects leading to an embedding, then walks
// the embedded type under the composed context.
type objectChain struct {
	pass   *pass
	at     *Node
	target *mapping.TypeDef
	err    error
}

// AppendObject implements nesting.NestedContextBuilder.
func (o *objectChain) AppendObject(name string) {
	if o.at == nil || o.err != nil {
		return
	}

	o.at, o.err = o.at.object(name)
}

// Build implements nesting.NestedContextBuilder.
func (o *objectChain) Build(nested *nesting.Context) error {
	if o.err != nil {
		return o.err
	}

	return o.pass.walkFields(nested, o.target.Name, "", o.target.Fields, o.at)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + filter.PathSeparator + name
}
