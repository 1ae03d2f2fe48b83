// Package macros parses mapping macro expressions far enough to compute the
// event capabilities they require.
//
// A macro is a dot-chained sequence of calls, e.g. "k(a).w(100).k(b)" or
// "r(2, m(shift, k(a)))". The migration engine only needs to know which
// key and relative-motion codes a macro can emit, so this parser validates
// the call structure and collects codes; it does not build an executable
// program.
package macros

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gvalkov/golang-evdev"

	"github.com/evmap/evmap/internal/keys"
)

var callPattern = regexp.MustCompile(`^\s*\w+\(.*\)\s*$`)

// IsMacro reports whether symbol looks like a macro expression rather than
// a plain key name.
func IsMacro(symbol string) bool {
	return callPattern.MatchString(symbol)
}

// Macro is a parsed macro expression.
type Macro struct {
	calls []call
}

type call struct {
	name string
	args []argument
}

// argument is either a literal token or a nested macro, never both.
type argument struct {
	literal string
	macro   *Macro
}

// Parse validates the call structure of a macro expression.
// Unknown functions, unbalanced parentheses, and wrong arities are errors;
// unknown symbol names inside calls surface later from Capabilities.
func Parse(symbol string) (*Macro, error) {
	macro, err := parseSequence(symbol)
	if err != nil {
		return nil, fmt.Errorf("parse macro %q: %w", symbol, err)
	}
	return macro, nil
}

func parseSequence(s string) (*Macro, error) {
	parts, err := splitTopLevel(s, '.')
	if err != nil {
		return nil, err
	}
	macro := &Macro{}
	for _, part := range parts {
		c, err := parseCall(part)
		if err != nil {
			return nil, err
		}
		macro.calls = append(macro.calls, c)
	}
	return macro, nil
}

func parseCall(s string) (call, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return call{}, fmt.Errorf("not a call: %q", s)
	}
	name := strings.TrimSpace(s[:open])
	c := call{name: strings.ToLower(name)}

	if err := validName(c.name); err != nil {
		return call{}, err
	}

	inner := s[open+1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return c, nil
	}
	rawArgs, err := splitTopLevel(inner, ',')
	if err != nil {
		return call{}, err
	}
	for _, raw := range rawArgs {
		raw = strings.TrimSpace(raw)
		if IsMacro(raw) {
			nested, err := parseSequence(raw)
			if err != nil {
				return call{}, err
			}
			c.args = append(c.args, argument{macro: nested})
			continue
		}
		c.args = append(c.args, argument{literal: raw})
	}
	return c, nil
}

// splitTopLevel splits s on sep at parenthesis depth zero.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	parts = append(parts, s[start:])
	return parts, nil
}

func validName(name string) error {
	switch name {
	case "k", "m", "r", "h", "w", "mouse", "wheel", "e":
		return nil
	default:
		return fmt.Errorf("unknown macro function %q", name)
	}
}

// Capabilities returns the key and relative-motion codes required to emit
// the macro. Symbol names that do not resolve to an event code are errors.
func (m *Macro) Capabilities() (keys.Capabilities, error) {
	caps := keys.NewCapabilities()
	for _, c := range m.calls {
		if err := c.collect(caps); err != nil {
			return keys.Capabilities{}, err
		}
	}
	return caps, nil
}

func (c call) collect(caps keys.Capabilities) error {
	switch c.name {
	case "k":
		if len(c.args) != 1 {
			return fmt.Errorf("k expects 1 argument, got %d", len(c.args))
		}
		return addSymbol(caps, c.args[0])
	case "m":
		if len(c.args) != 2 {
			return fmt.Errorf("m expects 2 arguments, got %d", len(c.args))
		}
		if err := addSymbol(caps, c.args[0]); err != nil {
			return err
		}
		return addSymbol(caps, c.args[1])
	case "r":
		if len(c.args) != 2 {
			return fmt.Errorf("r expects 2 arguments, got %d", len(c.args))
		}
		if _, err := strconv.Atoi(strings.TrimSpace(c.args[0].literal)); c.args[0].macro != nil || err != nil {
			return fmt.Errorf("r expects a repeat count, got %q", c.args[0].literal)
		}
		return addSymbol(caps, c.args[1])
	case "h":
		if len(c.args) > 1 {
			return fmt.Errorf("h expects at most 1 argument, got %d", len(c.args))
		}
		if len(c.args) == 1 {
			return addSymbol(caps, c.args[0])
		}
		return nil
	case "w":
		// Wait emits nothing.
		return nil
	case "mouse":
		return addDirection(caps, c, evdev.REL_Y, evdev.REL_X)
	case "wheel":
		return addDirection(caps, c, evdev.REL_WHEEL, evdev.REL_HWHEEL)
	case "e":
		return addEvent(caps, c)
	}
	return fmt.Errorf("unknown macro function %q", c.name)
}

// addSymbol resolves an argument that may be a nested macro or a key name.
func addSymbol(caps keys.Capabilities, arg argument) error {
	if arg.macro != nil {
		nested, err := arg.macro.Capabilities()
		if err != nil {
			return err
		}
		caps.Merge(nested)
		return nil
	}
	code, err := keys.Get(arg.literal)
	if err != nil {
		return err
	}
	caps.Key.Add(code)
	return nil
}

// addDirection handles mouse(direction, speed) and wheel(direction, speed),
// where up/down require the vertical code and left/right the horizontal one.
func addDirection(caps keys.Capabilities, c call, vertical, horizontal int) error {
	if len(c.args) != 2 {
		return fmt.Errorf("%s expects 2 arguments, got %d", c.name, len(c.args))
	}
	if c.args[0].macro != nil {
		return fmt.Errorf("%s expects a direction, got a macro", c.name)
	}
	switch keys.Normalize(c.args[0].literal) {
	case "up", "down":
		caps.Rel.Add(vertical)
	case "left", "right":
		caps.Rel.Add(horizontal)
	default:
		return fmt.Errorf("%s: unknown direction %q", c.name, c.args[0].literal)
	}
	if _, err := strconv.Atoi(strings.TrimSpace(c.args[1].literal)); c.args[1].macro != nil || err != nil {
		return fmt.Errorf("%s expects a speed, got %q", c.name, c.args[1].literal)
	}
	return nil
}

// addEvent handles e(type, code, value) with numeric or constant-name
// arguments, e.g. e(EV_REL, REL_X, 10) or e(2, 0, 10).
func addEvent(caps keys.Capabilities, c call) error {
	if len(c.args) != 3 {
		return fmt.Errorf("e expects 3 arguments, got %d", len(c.args))
	}
	evType, err := eventType(c.args[0].literal)
	if err != nil {
		return err
	}
	code, err := eventCode(evType, c.args[1].literal)
	if err != nil {
		return err
	}
	caps.AddCode(evType, code)
	return nil
}

func eventType(s string) (int, error) {
	switch keys.Normalize(s) {
	case "ev_key":
		return evdev.EV_KEY, nil
	case "ev_rel":
		return evdev.EV_REL, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("e: unknown event type %q", s)
	}
	return n, nil
}

var relByName = map[string]int{
	"rel_x":      evdev.REL_X,
	"rel_y":      evdev.REL_Y,
	"rel_wheel":  evdev.REL_WHEEL,
	"rel_hwheel": evdev.REL_HWHEEL,
}

func eventCode(evType int, s string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, nil
	}
	if evType == evdev.EV_REL {
		if code, ok := relByName[keys.Normalize(s)]; ok {
			return code, nil
		}
		return 0, fmt.Errorf("e: unknown rel code %q", s)
	}
	code, err := keys.Get(s)
	if err != nil {
		return 0, fmt.Errorf("e: %w", err)
	}
	return code, nil
}
