package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownSpecifier = errors.New("unknown layout specifier")

type UnknownSpecifierError struct {
	Input string
}

func (e *UnknownSpecifierError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownSpecifier, e.Input)
}

func (e *UnknownSpecifierError) Is(target error) bool {
	return target == ErrUnknownSpecifier
}

// Resolver maps command line arguments to layout identifiers. User aliases
// take precedence over the built-in catalog.
type Resolver struct {
	aliases map[string]ID
}

// NewResolver builds a resolver from user aliases. Alias targets may be
// catalog tags or hex literals, but not other aliases.
func NewResolver(aliases map[string]string) (*Resolver, error) {
	r := &Resolver{aliases: make(map[string]ID, len(aliases))}

	for name, target := range aliases {
		id, err := resolveBuiltin(target)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", name, err)
		}
		r.aliases[normalizeTag(name)] = id
	}

	return r, nil
}

func (r *Resolver) Resolve(arg string) (ID, error) {
	if r != nil {
		if id, ok := r.aliases[normalizeTag(arg)]; ok {
			return id, nil
		}
	}

	return resolveBuiltin(arg)
}

func resolveBuiltin(arg string) (ID, error) {
	if id, ok := Lookup(arg); ok {
		return id, nil
	}

	if id, ok := ParseHex(arg); ok {
		return id, nil
	}

	return 0, &UnknownSpecifierError{Input: arg}
}

// ParseHex parses 1 to 4 hex digits with an optional 0x prefix.
func ParseHex(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}

	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}

	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}

	return ID(v), true
}
