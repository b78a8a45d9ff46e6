// Package typedesc implements the compact type-descriptor language used to
// declare a node's input/output types, and the structural compatibility
// predicate edges are checked against.
//
// A descriptor is either a bare name ("int", "string", "any") or a generic
// name with comma-separated type arguments ("list<int>", "map<string,int>").
// Two descriptors are compatible when their outer names match and every
// type argument pair is recursively compatible, or when either side is
// absent or the wildcard "any".
package typedesc

import "strings"

// Any is the wildcard type name: it is compatible with everything.
const Any = "any"

// Descriptor is a parsed type tag: an outer name plus, for generics, its
// type arguments.
type Descriptor struct {
	Name string
	Args []Descriptor
}

// Parse reads a descriptor string such as "list<int>" or
// "map<string,list<int>>" into a Descriptor tree. An empty string parses to
// the zero Descriptor, which Compatible treats as the absent/untyped case.
func Parse(s string) Descriptor {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}
	}

	open := strings.IndexByte(s, '<')
	if open < 0 {
		return Descriptor{Name: s}
	}
	if !strings.HasSuffix(s, ">") {
		// Malformed generic syntax; treat the whole string as an opaque name
		// rather than failing the build over a cosmetic typo in a type tag.
		return Descriptor{Name: s}
	}

	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	var args []Descriptor
	for _, part := range splitTopLevel(inner) {
		args = append(args, Parse(part))
	}

	return Descriptor{Name: name, Args: args}
}

// splitTopLevel splits s on commas that are not nested inside angle
// brackets, so "string,list<int>" splits into two parts while
// "list<int>"'s own inner "int" is left alone.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// String renders d back into descriptor syntax.
func (d Descriptor) String() string {
	if d.Name == "" {
		return ""
	}
	if len(d.Args) == 0 {
		return d.Name
	}
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = a.String()
	}
	return d.Name + "<" + strings.Join(args, ",") + ">"
}

// isAbsent reports whether d represents "no declared type".
func (d Descriptor) isAbsent() bool {
	return d.Name == ""
}

// Compatible reports whether a producer's declared output type may feed a
// consumer's declared input type, given the raw descriptor strings:
//   - either side absent or "any" -> compatible
//   - identical descriptors -> compatible
//   - same generic outer kind with equal arity -> compatible if every
//     argument pair is compatible (recursively, same rule)
//   - otherwise -> incompatible
func Compatible(output, input string) bool {
	return CompatibleDescriptors(Parse(output), Parse(input))
}

// CompatibleDescriptors is Compatible over already-parsed descriptors.
func CompatibleDescriptors(output, input Descriptor) bool {
	if output.isAbsent() || input.isAbsent() {
		return true
	}
	if output.Name == Any || input.Name == Any {
		return true
	}
	if output.Name != input.Name {
		return false
	}
	if len(output.Args) != len(input.Args) {
		return false
	}
	for i := range output.Args {
		if !CompatibleDescriptors(output.Args[i], input.Args[i]) {
			return false
		}
	}
	return true
}
