// Package catalog holds the immutable registry of shell command templates
// shared by the rex tools and resolves {{placeholder}} tokens into literal
// commands.
//
// Resolved commands are inserted verbatim into shell strings. Callers are
// responsible for the shell safety of substituted values.
package catalog
