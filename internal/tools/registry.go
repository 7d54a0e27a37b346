package tools

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/fibjs/fibhost/internal"
	"github.com/fibjs/fibhost/internal/options"
)

// Extension of user tool scripts.
const scriptExt = ".js"

// An external tool invoked as "--<Name>".
type Tool struct {
	Name    string     // Flag name without the leading dashes.
	Help    string     // One-line description.
	Script  string     // Script the engine runs. Empty uses "opt_tools/<Name>".
	Grammar func() any // Returns a fresh kong grammar, or nil to pass arguments through.
}

// Returns the key the host flag scanner looks up for this tool.
func (t Tool) Key() string {
	return options.ToolNamespace + t.Name
}

func (t Tool) script() string {
	if t.Script != "" {
		return t.Script
	}
	return t.Key()
}

// A resolved tool call, ready to hand to the engine.
type Invocation struct {
	Tool    string   // Tool name.
	Script  string   // Script to run.
	Args    []string // Arguments after the tool flag, unchanged.
	Options any      // Parsed grammar, or nil for pass-through tools.
}

// Set of known tools, keyed by name.
//
// Safe for concurrent use. The zero value is not usable; call [NewRegistry]
// or [Builtin].
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// Creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Adds a tool. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty tool name", ErrTools)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Reports whether key ("opt_tools/<name>") names a registered tool.
//
// Implements [options.ToolLookup].
func (r *Registry) Lookup(key string) bool {
	name, ok := strings.CutPrefix(key, options.ToolNamespace)
	if !ok {
		return false
	}
	_, ok = r.Get(name)
	return ok
}

// Returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registers every "<name>.js" file in dir as a pass-through tool.
//
// A missing directory registers nothing. Files whose name is already taken
// are skipped, so built-in tools cannot be shadowed. Returns the number of
// tools added.
func (r *Registry) Discover(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTools, err)
	}

	added := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != scriptExt {
			continue
		}

		t := Tool{
			Name:   strings.TrimSuffix(e.Name(), scriptExt),
			Help:   "User tool.",
			Script: filepath.Join(dir, e.Name()),
		}
		if err := r.Register(t); err != nil {
			continue
		}
		added++
	}
	return added, nil
}

// Resolves a call to the tool name with the given arguments.
//
// Tools with a grammar have args validated by kong; a mismatch returns an
// error describing it. args is carried into the invocation unchanged either
// way.
func (r *Registry) Parse(name string, args []string) (*Invocation, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	inv := &Invocation{
		Tool:   t.Name,
		Script: t.script(),
		Args:   slices.Clone(args),
	}
	if t.Grammar == nil {
		return inv, nil
	}

	grammar := t.Grammar()
	parser, err := kong.New(grammar,
		kong.Name(internal.Name+" --"+t.Name),
		kong.Description(t.Help),
		kong.NoDefaultHelp(),
		kong.Writers(io.Discard, io.Discard),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTools, err)
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", ErrTools, t.Name, err)
	}

	inv.Options = grammar
	return inv, nil
}

// Resolves a tool call at the head of tail.
//
// tail is the part of the argument list at and after the host flag boundary.
// When its first token is "--<name>" for a registered tool, the call is
// parsed with [Registry.Parse] using the tokens after it. Reports false when
// the boundary was not a tool.
func (r *Registry) Find(tail []string) (*Invocation, bool, error) {
	if len(tail) == 0 {
		return nil, false, nil
	}

	name, ok := strings.CutPrefix(tail[0], "--")
	if !ok || !r.Lookup(options.ToolNamespace+name) {
		return nil, false, nil
	}

	inv, err := r.Parse(name, tail[1:])
	return inv, true, err
}
