package domain

import "strings"

// Namespace tags a substitution reference.
type Namespace string

// Reference namespaces understood by the resolver.
const (
	NamespaceWorkspaceFolder         Namespace = "workspaceFolder"
	NamespaceWorkspaceFolderBasename Namespace = "workspaceFolderBasename"
	NamespaceCommand                 Namespace = "command"
	NamespaceInput                   Namespace = "input"
	NamespaceEnv                     Namespace = "env"
	NamespaceConfig                  Namespace = "config"
)

const (
	refOpen  = "${"
	refClose = "}"
)

// Reference is a parsed ${namespace:key} marker.
// Workspace references carry no key.
type Reference struct {
	Namespace Namespace
	Key       string
}

// String renders the reference back into marker form.
func (r Reference) String() string {
	if r.Key == "" && isBareNamespace(r.Namespace) {
		return refOpen + string(r.Namespace) + refClose
	}
	return refOpen + string(r.Namespace) + ":" + r.Key + refClose
}

// Segment is one span of a tokenized string: either literal text or a reference.
// Raw always holds the exact source text of the span.
type Segment struct {
	Raw   string
	Ref   Reference
	IsRef bool
}

// Tokenize splits s into literal and reference segments.
// Markers with an unknown namespace, a missing closing brace or a nested
// marker inside their body are kept as literal text, so a later pass can
// see the inner marker once it has been substituted.
func Tokenize(s string) []Segment {
	var segs []Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Raw: lit.String()})
			lit.Reset()
		}
	}

	for len(s) > 0 {
		start := strings.Index(s, refOpen)
		if start < 0 {
			lit.WriteString(s)
			break
		}
		lit.WriteString(s[:start])
		s = s[start:]

		end := strings.Index(s, refClose)
		if end < 0 {
			lit.WriteString(s)
			break
		}

		body := s[len(refOpen):end]
		if inner := strings.Index(body, refOpen); inner >= 0 {
			lit.WriteString(s[:len(refOpen)+inner])
			s = s[len(refOpen)+inner:]
			continue
		}

		ref, ok := parseReference(body)
		if !ok {
			lit.WriteString(s[:end+len(refClose)])
			s = s[end+len(refClose):]
			continue
		}

		flush()
		segs = append(segs, Segment{Raw: s[:end+len(refClose)], Ref: ref, IsRef: true})
		s = s[end+len(refClose):]
	}
	flush()

	return segs
}

// HasReferences reports whether s contains at least one recognized marker.
func HasReferences(s string) bool {
	for _, seg := range Tokenize(s) {
		if seg.IsRef {
			return true
		}
	}
	return false
}

func parseReference(body string) (Reference, bool) {
	ns, key, hasKey := strings.Cut(body, ":")
	namespace := Namespace(ns)

	if !hasKey {
		if isBareNamespace(namespace) {
			return Reference{Namespace: namespace}, true
		}
		return Reference{}, false
	}

	switch namespace {
	case NamespaceCommand, NamespaceInput, NamespaceEnv, NamespaceConfig:
		key = strings.TrimRight(key, " \t")
		if key == "" {
			return Reference{}, false
		}
		return Reference{Namespace: namespace, Key: key}, true
	default:
		return Reference{}, false
	}
}

func isBareNamespace(ns Namespace) bool {
	return ns == NamespaceWorkspaceFolder || ns == NamespaceWorkspaceFolderBasename
}
