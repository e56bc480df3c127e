// Package schema validates raw parameter values against the declared
// catalog parameter types: string, number, integer, boolean and array.
package schema
