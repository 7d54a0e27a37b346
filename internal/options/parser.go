package options

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/fibjs/fibhost/internal"
	"github.com/jonboulle/clockwork"
)

const (

	// Printed after the program name by --version when no version was set at
	// build time.
	unversioned = "(development build)"
)

// Provides the engine's own flag help, printed by --v8-options.
type EngineHelp interface {
	Usage() string
}

// Parses host flags out of a process argument list.
//
// The zero value is usable: it matches no external tools, prints an empty
// engine help, uses the real clock and the working directory, and logs to the
// default logger.
type Parser struct {
	Tools   ToolLookup      // External tool registry consulted by the scanner.
	Engine  EngineHelp      // Source of the --v8-options text.
	Clock   clockwork.Clock // Clock for the generated coverage file name.
	Dir     string          // Directory relative coverage paths resolve against. Empty uses the working directory.
	Version string          // Version printed by --version. Empty uses [internal.Version] when set.
	Logger  *slog.Logger    // Destination for parse diagnostics.
}

// Outcome of a successful parse.
type Result struct {
	Config   Config   // Configuration with every host flag applied.
	Args     []string // Arguments for the engine: unconsumed host-region tokens, then the tail.
	Boundary int      // End of the host flag region in the original list (exclusive).
	Dropped  int      // Number of host flags consumed.
}

// Returns the forwarded tokens that came from the host flag region,
// including the program path.
func (r *Result) HostArgs() []string {
	return r.Args[:r.Boundary-r.Dropped]
}

// Returns the forwarded tokens at and after the boundary.
func (r *Result) Tail() []string {
	return r.Args[r.Boundary-r.Dropped:]
}

// Applies host flags from args to cfg.
//
// The boundary is computed by [Scan]. Every token in [1, boundary) is
// matched against the host flag table; consumed tokens are dropped and the
// rest are forwarded in their original order, followed by args[boundary:]
// unchanged. args itself is not modified.
//
// An [*Exit] is returned when a flag requests termination. Any coverage file
// opened during the parse is closed before returning it.
func (p *Parser) Parse(cfg Config, args []string) (*Result, error) {
	pos := Scan(args, p.Tools)

	d := &dispatch{parser: p, cfg: cfg}
	consumed := make([]bool, pos)

	for i := 1; i < pos; i++ {
		ok, err := d.apply(args[i])
		if err != nil {
			d.closeOpened()
			return nil, err
		}
		consumed[i] = ok
	}

	forwarded, dropped := compact(args, pos, consumed)

	p.logger().Debug("parsed host flags",
		"boundary", pos,
		"dropped", dropped,
		"args", forwarded,
	)

	return &Result{
		Config:   d.cfg,
		Args:     forwarded,
		Boundary: pos,
		Dropped:  dropped,
	}, nil
}

// Filters consumed tokens out of args[:pos] and appends args[pos:].
//
// Relative order is preserved and args is left untouched. Returns the new
// list and the number of tokens removed.
func compact(args []string, pos int, consumed []bool) ([]string, int) {
	out := make([]string, 0, len(args))
	dropped := 0

	for i, arg := range args[:pos] {
		if consumed[i] {
			dropped++
			continue
		}
		out = append(out, arg)
	}

	return append(out, args[pos:]...), dropped
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Parser) clock() clockwork.Clock {
	if p.Clock != nil {
		return p.Clock
	}
	return clockwork.NewRealClock()
}

// Returns the version to print and whether one is known.
func (p *Parser) version() (string, bool) {
	if p.Version != "" {
		return p.Version, true
	}
	return internal.Version(), internal.HasVersion()
}

// State of a single dispatch pass.
type dispatch struct {
	parser *Parser
	cfg    Config
	opened []*CoverageSink // Sinks opened by this pass, closed if it terminates.
}

// Matches arg against the flag table and applies the first matching rule.
//
// Returns whether the token was consumed.
func (d *dispatch) apply(arg string) (bool, error) {
	i := slices.IndexFunc(flagTable, func(r flagRule) bool { return r.match(arg) })
	if i < 0 {
		return false, nil
	}

	r := flagTable[i]
	if err := r.apply(d, arg[len(r.name):]); err != nil {
		return false, err
	}

	d.parser.logger().Debug("host flag", "flag", r.name, "arg", arg, "consumed", r.consume)
	return r.consume, nil
}

// Replaces the coverage sink, closing the one it supersedes.
func (d *dispatch) setCoverage(sink *CoverageSink) {
	if prev := d.cfg.Coverage; prev != nil {
		if err := prev.Close(); err != nil {
			d.parser.logger().Warn("failed to close coverage file", "name", prev.Name, "error", err)
		}
		d.opened = slices.DeleteFunc(d.opened, func(s *CoverageSink) bool { return s == prev })
	}
	d.cfg.Coverage = sink
	d.opened = append(d.opened, sink)
}

// Closes every sink opened by this pass.
func (d *dispatch) closeOpened() {
	for _, s := range d.opened {
		_ = s.Close()
	}
	d.opened = nil
	d.cfg.Coverage = nil
}

// A host flag spelling and its effect.
type flagRule struct {
	name    string                                 // Spelling, or the fixed prefix for prefix rules.
	prefix  bool                                   // Match name as a prefix instead of exactly.
	consume bool                                   // Remove the token from the forwarded list.
	apply   func(d *dispatch, suffix string) error // Effect; suffix is the text after name.
}

func (r flagRule) match(arg string) bool {
	if r.prefix {
		return strings.HasPrefix(arg, r.name)
	}
	return arg == r.name
}

// Host flags in match order. The first matching rule wins, so --prof must
// precede --prof-interval= and --cov= must precede --cov.
var flagTable = []flagRule{
	{name: "--help", apply: (*dispatch).help},
	{name: "-h", apply: (*dispatch).help},
	{name: "--version", apply: (*dispatch).version},
	{name: "-v", apply: (*dispatch).version},
	{name: "--use-thread", consume: true, apply: func(d *dispatch, _ string) error {
		d.cfg.UseThread = true
		return nil
	}},
	{name: "--tcpdump", consume: true, apply: func(d *dispatch, _ string) error {
		d.cfg.TCPDump = true
		return nil
	}},
	{name: "--ssldump", consume: true, apply: func(d *dispatch, _ string) error {
		d.cfg.SSLDump = true
		return nil
	}},
	{name: "--use-uv-socket", prefix: true, consume: true, apply: func(d *dispatch, suffix string) error {
		d.cfg.UVSocket = suffix == "" || suffix == "=on"
		return nil
	}},
	{name: "--prof", consume: true, apply: func(d *dispatch, _ string) error {
		d.cfg.Prof = true
		return nil
	}},
	{name: "--prof-interval=", prefix: true, consume: true, apply: func(d *dispatch, suffix string) error {
		d.cfg.ProfInterval = max(atoi(suffix), MinProfInterval)
		return nil
	}},
	{name: "--cov=", prefix: true, consume: true, apply: (*dispatch).coverageFile},
	{name: "--cov", consume: true, apply: (*dispatch).coverageDefault},
	{name: "--v8-options", apply: (*dispatch).engineHelp},
}

func (d *dispatch) help(string) error {
	return &Exit{Message: Usage()}
}

func (d *dispatch) version(string) error {
	v, ok := d.parser.version()
	if !ok {
		return &Exit{Message: internal.Name + " " + unversioned + "\n"}
	}
	return &Exit{Message: "v" + v + "\n"}
}

func (d *dispatch) engineHelp(string) error {
	if d.parser.Engine == nil {
		return &Exit{}
	}
	return &Exit{Message: d.parser.Engine.Usage()}
}
