// Package lexer turns a Graphoid source string into a flat token.Token
// stream (spec §4.1): literals, identifiers, keywords, operators,
// delimiters, and Newline tokens preserved as potential statement
// terminators. Malformed input raises an errorx syntax error carrying
// the offending position, following the teacher's position-carrying
// error convention used throughout the workspace.
package lexer
