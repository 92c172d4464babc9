// SPDX-License-Identifier: MIT

package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/statevar/element"
)

// Sentinel errors for parsing.
var (
	ErrTooFewFields = errors.New("netlist: expected name, type, value, nodeA, nodeB")
	ErrUnknownKind  = errors.New("netlist: unknown element type")
	ErrBadValue     = errors.New("netlist: invalid value")
	ErrBadNode      = errors.New("netlist: invalid node")
)

// ParseError locates a failure in the input.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("netlist: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Option configures Parse.
type Option func(*Options)

// Options holds parser parameters.
type Options struct {
	Logger  *slog.Logger
	Lenient bool
}

// DefaultOptions returns strict parsing with component=netlist logging.
func DefaultOptions() Options {
	return Options{Logger: slog.Default().With(slog.String("component", "netlist"))}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLenient skips lines with fewer than five fields after logging them.
func WithLenient() Option {
	return func(o *Options) { o.Lenient = true }
}

var kinds = map[string]element.Kind{
	"r": element.Resistor, "resistor": element.Resistor,
	"c": element.Capacitor, "capacitor": element.Capacitor,
	"l": element.Inductor, "inductor": element.Inductor,
	"v": element.VoltageSource, "vs": element.VoltageSource, "voltagesource": element.VoltageSource,
	"i": element.CurrentSource, "j": element.CurrentSource, "cs": element.CurrentSource, "currentsource": element.CurrentSource,
}

// ParseKind resolves a type alias.
func ParseKind(s string) (element.Kind, error) {
	k, ok := kinds[strings.ToLower(s)]
	if !ok {
		return element.Invalid, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

var unitScale = map[string]float64{
	"t":   1e12,
	"g":   1e9,
	"meg": 1e6,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:e[-+]?\d+)?)(meg|[tgkmunpf])?([a-zω]*)$`)

// ParseValue reads a number with an optional engineering suffix, e.g.
// "4.7k", "0,001", "10mH", "2meg", "1e-6".
func ParseValue(s string) (float64, error) {
	m := valueRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadValue, s, err)
	}
	if m[2] != "" {
		v *= unitScale[m[2]]
	}
	return v, nil
}

func normalizeValue(s string) string {
	norm := strings.NewReplacer(",", ".", "\u00b5", "u", "\u03bc", "u").Replace(strings.TrimSpace(s))
	return strings.ToLower(norm)
}

// bareFemto reports a value whose only suffix is "f", such as "1F": the
// scale is femto, not a farad unit.
func bareFemto(s string) bool {
	m := valueRe.FindStringSubmatch(normalizeValue(s))
	return m != nil && m[2] == "f" && m[3] == ""
}

func parseNode(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadNode, s)
	}
	return n, nil
}

func comment(line string) bool {
	return line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*")
}

// Parse reads every element from r and validates the result.
func Parse(r io.Reader, opts ...Option) ([]element.Element, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var elems []element.Element
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if comment(text) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 5 {
			if o.Lenient {
				o.Logger.Warn("skipping malformed line", slog.Int("line", line), slog.String("text", text))
				continue
			}
			return nil, &ParseError{Line: line, Text: text, Err: ErrTooFewFields}
		}
		e, err := parseFields(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		if e.Kind() == element.Capacitor && bareFemto(fields[2]) {
			o.Logger.Warn("capacitor value read as femtofarads; write fF to confirm or drop the F for farads",
				slog.Int("line", line), slog.String("id", e.ID()), slog.Float64("value", e.Value()))
		}
		elems = append(elems, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("netlist: read: %w", err)
	}
	if err := element.Validate(elems); err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	o.Logger.Debug("parsed netlist", slog.Int("elements", len(elems)), slog.Int("lines", line))
	return elems, nil
}

func parseFields(f []string) (element.Element, error) {
	kind, err := ParseKind(f[1])
	if err != nil {
		return element.Element{}, err
	}
	value, err := ParseValue(f[2])
	if err != nil {
		return element.Element{}, err
	}
	a, err := parseNode(f[3])
	if err != nil {
		return element.Element{}, err
	}
	b, err := parseNode(f[4])
	if err != nil {
		return element.Element{}, err
	}
	return element.New(f[0], kind, value, a, b), nil
}

// ReadFile parses the netlist stored at path.
func ReadFile(path string, opts ...Option) ([]element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Write emits elems in the format Parse reads.
func Write(w io.Writer, elems []element.Element) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# name type value nodeA nodeB")
	for _, e := range elems {
		fmt.Fprintf(bw, "%s %s %s %d %d\n", e.ID(), e.Kind().Symbol(), strconv.FormatFloat(e.Value(), 'g', -1, 64), e.NodeA(), e.NodeB())
	}
	return bw.Flush()
}
