package token

import "sync/atomic"

// nextKindID tracks the next available dynamic kind ID.
// Dynamic kinds start after maxBuiltin (999).
var nextKindID = int32(maxBuiltin)

// dynamicKinds maps registered dynamic kinds to their names.
// Protected by atomic operations for the ID counter; registration
// happens at init() time in dialect packages, before any parsing.
var dynamicKinds = make(map[SyntaxKind]string)

// dynamicNames maps registered names back to their kinds.
var dynamicNames = make(map[string]SyntaxKind)

// Register registers a new dynamic syntax kind with the given name.
// Dialects use this for constructs the core does not know about
// (e.g. "qualify_clause", "dollar_quote"). Registering the same name
// twice returns the existing kind.
func Register(name string) SyntaxKind {
	if k, ok := dynamicNames[name]; ok {
		return k
	}

	id := atomic.AddInt32(&nextKindID, 1)
	k := SyntaxKind(id)

	dynamicKinds[k] = name
	dynamicNames[name] = k

	return k
}

// getDynamicName returns the name of a dynamic kind.
func getDynamicName(k SyntaxKind) (string, bool) {
	name, ok := dynamicKinds[k]
	return name, ok
}

// Lookup returns the kind registered under name, searching builtin
// kinds first and dynamic kinds second.
func Lookup(name string) (SyntaxKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	k, ok := dynamicNames[name]
	return k, ok
}

// IsDynamic returns true if the kind was dynamically registered.
func IsDynamic(k SyntaxKind) bool {
	return k > maxBuiltin
}

// RegisteredKinds returns a copy of all registered dynamic kinds.
func RegisteredKinds() map[SyntaxKind]string {
	result := make(map[SyntaxKind]string, len(dynamicKinds))
	for k, v := range dynamicKinds {
		result[k] = v
	}
	return result
}
