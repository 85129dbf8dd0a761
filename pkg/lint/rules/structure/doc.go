// Package structure contains lint rules about query structure.
package structure
