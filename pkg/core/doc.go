// Package core defines the shared language of the SQL front end: the AST node
// model, the visitor contract and the plain-data pieces of a dialect
// (identifier rules, clause slots, operator definitions, extension flags).
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
