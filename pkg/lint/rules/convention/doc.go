// Package convention contains lint rules enforcing stylistic conventions.
package convention
