package tags

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	textmodel "github.com/TakenPilot/text-model"
)

// ErrInvalidConfig flags a Config that cannot be built into a Registry.
var ErrInvalidConfig = errors.New("tags: invalid configuration")

// Class tells what role a markup tag plays during ingestion.
type Class int8

const (
	// Unknown tags take no part in ingestion; their subtrees are skipped.
	Unknown Class = iota + 1
	// Container tags group content; ingestion descends without recording.
	Container
	// Opaque tags hide their content; none of their text may surface in a
	// model.
	Opaque
	// Format tags stand for a formatting kind of the model.
	Format
)

func (c Class) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Container:
		return "container"
	case Opaque:
		return "opaque"
	case Format:
		return "format"
	}
	return "<illegal class>"
}

// Classification is the verdict for a single markup tag. Kind and Name are
// set for Format tags only.
type Classification struct {
	Class Class
	Kind  textmodel.Kind
	Name  string // canonical kind name, e.g. "bold"
}

// KindDef declares one formatting kind: its canonical name, the kind of
// block it produces, and the markup tags that stand for it. Tags[0] is the
// tag emission will use.
type KindDef struct {
	Name string
	Kind textmodel.Kind
	Tags []string
}

// Config is the declarative table a Registry is built from. Tag and name
// comparison is case-insensitive; everything is lowercased during
// construction.
type Config struct {
	Kinds      []KindDef
	Aliases    map[string]string // tag → tag, resolved before classification
	Containers []string
	Opaque     []string
}

// Registry is an immutable tag classification table, safe for concurrent
// use. Build one with New, or use Default.
type Registry struct {
	byTag      map[string]string // tag → kind name
	byName     map[string]KindDef
	aliases    map[string]string
	containers map[string]struct{}
	opaque     map[string]struct{}
	names      []string // kind names in declaration order
}

// New builds a registry from cfg. Kind names and tags must be unique, every
// kind needs at least one tag, and aliases must point at mapped tags;
// violations are reported wrapping ErrInvalidConfig.
func New(cfg Config) (*Registry, error) {
	r := &Registry{
		byTag:      make(map[string]string),
		byName:     make(map[string]KindDef, len(cfg.Kinds)),
		aliases:    make(map[string]string, len(cfg.Aliases)),
		containers: make(map[string]struct{}, len(cfg.Containers)),
		opaque:     make(map[string]struct{}, len(cfg.Opaque)),
	}
	for _, d := range cfg.Kinds {
		def := KindDef{Name: strings.ToLower(d.Name), Kind: d.Kind}
		if def.Name == "" || len(d.Tags) == 0 {
			return nil, fmt.Errorf("%w: kind %q needs a name and at least one tag", ErrInvalidConfig, d.Name)
		}
		switch def.Kind {
		case textmodel.Continuous, textmodel.Propertied, textmodel.Singled:
		default:
			return nil, fmt.Errorf("%w: kind %q has no legal formatting kind", ErrInvalidConfig, def.Name)
		}
		if _, ok := r.byName[def.Name]; ok {
			return nil, fmt.Errorf("%w: kind %q declared twice", ErrInvalidConfig, def.Name)
		}
		for _, t := range d.Tags {
			tag := strings.ToLower(t)
			if _, ok := r.byTag[tag]; ok {
				return nil, fmt.Errorf("%w: tag %q mapped twice", ErrInvalidConfig, tag)
			}
			r.byTag[tag] = def.Name
			def.Tags = append(def.Tags, tag)
		}
		r.byName[def.Name] = def
		r.names = append(r.names, def.Name)
	}
	for _, t := range cfg.Containers {
		tag := strings.ToLower(t)
		if _, ok := r.byTag[tag]; ok {
			return nil, fmt.Errorf("%w: tag %q is both formatting and container", ErrInvalidConfig, tag)
		}
		r.containers[tag] = struct{}{}
	}
	for _, t := range cfg.Opaque {
		tag := strings.ToLower(t)
		if _, ok := r.byTag[tag]; ok {
			return nil, fmt.Errorf("%w: tag %q is both formatting and opaque", ErrInvalidConfig, tag)
		}
		if _, ok := r.containers[tag]; ok {
			return nil, fmt.Errorf("%w: tag %q is both container and opaque", ErrInvalidConfig, tag)
		}
		r.opaque[tag] = struct{}{}
	}
	for f, t := range cfg.Aliases {
		from, to := strings.ToLower(f), strings.ToLower(t)
		if r.mapped(from) {
			return nil, fmt.Errorf("%w: alias %q shadows a mapped tag", ErrInvalidConfig, from)
		}
		if !r.mapped(to) {
			return nil, fmt.Errorf("%w: alias %q points at unmapped tag %q", ErrInvalidConfig, from, to)
		}
		r.aliases[from] = to
	}
	tracer().Debugf("tag registry built with %d formatting kinds", len(r.names))
	return r, nil
}

// mapped tells if tag is known to the registry in any role.
func (r *Registry) mapped(tag string) bool {
	if _, ok := r.byTag[tag]; ok {
		return true
	}
	if _, ok := r.containers[tag]; ok {
		return true
	}
	_, ok := r.opaque[tag]
	return ok
}

// Canonical lowercases a markup tag and resolves it through the alias table.
// Alias targets are mapped tags, so a single step suffices.
func (r *Registry) Canonical(tag string) string {
	tag = strings.ToLower(tag)
	if to, ok := r.aliases[tag]; ok {
		return to
	}
	return tag
}

// Classify returns the verdict for a markup tag.
func (r *Registry) Classify(tag string) Classification {
	canonical := r.Canonical(tag)
	if name, ok := r.byTag[canonical]; ok {
		def := r.byName[name]
		return Classification{Class: Format, Kind: def.Kind, Name: def.Name}
	}
	if _, ok := r.containers[canonical]; ok {
		return Classification{Class: Container}
	}
	if _, ok := r.opaque[canonical]; ok {
		return Classification{Class: Opaque}
	}
	return Classification{Class: Unknown}
}

// TagFor returns the markup tag emission uses for a kind name: the first tag
// of the kind's declaration.
func (r *Registry) TagFor(name string) (string, bool) {
	def, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return def.Tags[0], true
}

// KindOf resolves a kind name to its formatting kind. Registries thereby
// satisfy textmodel.KindResolver and may be handed to the JSON decoder.
func (r *Registry) KindOf(name string) (textmodel.Kind, bool) {
	def, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return def.Kind, true
}

// KindNames returns the canonical kind names in declaration order. Emission
// uses this order for layering whenever no overlap heuristic applies.
func (r *Registry) KindNames() []string {
	return slices.Clone(r.names)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in registry for everyday inline HTML. Continuous
// kinds are bold (b, strong), emphasis (em, i), strike (s, del), code (code)
// and mark (mark); link (a) is propertied; break (br) and softbreak (wbr)
// are singled. The tags u, strike and tt are aliases for em, s and code.
// Containers are span, p, div, li, blockquote and the headings h1 through
// h6; script, style and noscript are opaque.
func Default() *Registry {
	defaultOnce.Do(func() {
		var err error
		defaultReg, err = New(Config{
			Kinds: []KindDef{
				{Name: "bold", Kind: textmodel.Continuous, Tags: []string{"b", "strong"}},
				{Name: "emphasis", Kind: textmodel.Continuous, Tags: []string{"em", "i"}},
				{Name: "strike", Kind: textmodel.Continuous, Tags: []string{"s", "del"}},
				{Name: "code", Kind: textmodel.Continuous, Tags: []string{"code"}},
				{Name: "mark", Kind: textmodel.Continuous, Tags: []string{"mark"}},
				{Name: "link", Kind: textmodel.Propertied, Tags: []string{"a"}},
				{Name: "break", Kind: textmodel.Singled, Tags: []string{"br"}},
				{Name: "softbreak", Kind: textmodel.Singled, Tags: []string{"wbr"}},
			},
			Aliases: map[string]string{
				"u":      "em",
				"strike": "s",
				"tt":     "code",
			},
			Containers: []string{"span", "p", "div", "li", "blockquote",
				"h1", "h2", "h3", "h4", "h5", "h6"},
			Opaque: []string{"script", "style", "noscript"},
		})
		if err != nil {
			panic("tags: default registry does not construct: " + err.Error())
		}
	})
	return defaultReg
}
