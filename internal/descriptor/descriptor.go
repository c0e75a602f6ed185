// SPDX-License-Identifier: AGPL-3.0-or-later

// Package descriptor parses the argument mini-language: name[.type][modifier].
package descriptor

import (
	"errors"
	"strings"
)

// ErrMalformedDescriptor is returned for an empty descriptor token. Every
// other token is accepted; unknown type tags fall through to the opaque-text
// reader downstream.
var ErrMalformedDescriptor = errors.New("descriptor: empty token")

// Modifier is the single trailing marker on a descriptor token.
type Modifier byte

const (
	ModNone      Modifier = 0
	ModRepeat    Modifier = '+' // repeatable, collected into a list
	ModMulti     Modifier = '*' // multi-value on one occurrence
	ModFlag      Modifier = ':' // boolean flag
	ModFileInput Modifier = '%' // value names an input file, reader provided
)

// modifierOrder is the recognition priority. Only the first match on a part
// takes effect; a conflicting suffix on the other part is left alone.
var modifierOrder = [...]Modifier{ModRepeat, ModMulti, ModFlag, ModFileInput}

// Role classifies what the generated program does with an argument.
type Role int

const (
	RoleOrdinary Role = iota
	RoleInputFile
	RoleOutputSink
	RoleConfigSource
	RoleServerControl
)

// Descriptor is one parsed argument specification.
type Descriptor struct {
	Name     string
	Type     string // csv, json, yaml, bool, int, float, or "" for opaque text
	Modifier Modifier
	Role     Role
}

// Parse splits a raw token into a Descriptor. The first '.' separates name
// from declared type; exactly one trailing modifier is recognized, checked on
// the name part first and on the type part only when the name carries none.
func Parse(token string) (Descriptor, error) {
	if token == "" {
		return Descriptor{}, ErrMalformedDescriptor
	}

	name := token
	typ := ""
	if i := strings.Index(token, "."); i >= 0 {
		name = token[:i]
		typ = token[i+1:]
	}

	mod := ModNone
	if name, mod = splitModifier(name); mod == ModNone {
		typ, mod = splitModifier(typ)
	} else {
		// Name claimed the modifier. A stray suffix on the type part is
		// still stripped so the declared type stays usable, but it does
		// not take effect.
		typ, _ = splitModifier(typ)
	}

	if mod == ModFlag {
		typ = "bool"
	}

	return Descriptor{
		Name:     name,
		Type:     typ,
		Modifier: mod,
		Role:     deriveRole(name, mod),
	}, nil
}

// ParseAll parses every token, failing on the first malformed one.
func ParseAll(tokens []string) ([]Descriptor, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]Descriptor, 0, len(tokens))
	for _, tok := range tokens {
		d, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Synthetic builds an injected descriptor from a token the engine controls.
// Injection tokens are well formed by construction.
func Synthetic(token string) Descriptor {
	d, _ := Parse(token)
	return d
}

func splitModifier(s string) (string, Modifier) {
	if s == "" {
		return s, ModNone
	}
	last := s[len(s)-1]
	for _, m := range modifierOrder {
		if byte(m) == last {
			return s[:len(s)-1], m
		}
	}
	return s, ModNone
}

func deriveRole(name string, mod Modifier) Role {
	switch name {
	case "config":
		return RoleConfigSource
	case "output":
		return RoleOutputSink
	case "server", "host", "port":
		return RoleServerControl
	}
	if mod == ModFileInput {
		return RoleInputFile
	}
	return RoleOrdinary
}

// Strip removes at most one trailing modifier character from s. Stripping is
// idempotent: a stripped name re-parses to the same descriptor.
func Strip(s string) string {
	out, _ := splitModifier(s)
	return out
}

// IsList reports whether the argument collects multiple values.
func (d Descriptor) IsList() bool {
	return d.Modifier == ModRepeat || d.Modifier == ModMulti
}

// NeedsStream reports whether the orchestration wrapper must open the
// argument's value as a file before decoding. Config and output are consumed
// by the wrapper itself; bool/int/float values pass through unchanged, and a
// list-modified argument passes its collected values through regardless of
// declared type, matching the flag registration.
func (d Descriptor) NeedsStream() bool {
	if d.Role == RoleConfigSource || d.Role == RoleOutputSink {
		return false
	}
	if d.IsList() {
		return false
	}
	switch d.Type {
	case "bool", "int", "float":
		return false
	case "csv", "json", "yaml":
		return true
	}
	return d.Role == RoleInputFile
}
