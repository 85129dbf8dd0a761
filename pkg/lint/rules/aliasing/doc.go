// Package aliasing contains lint rules about table and column aliases.
package aliasing
