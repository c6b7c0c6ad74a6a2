// Package pathexpr parses settings path expressions into segments.
//
// A path expression is a dot-separated list of tokens. Each token is a
// mapping key or, when it is made only of digits, a list index:
//
//	"LOGGING"                          -> [LOGGING]
//	"TEMPLATES.0.OPTIONS"              -> [TEMPLATES 0 OPTIONS]
//	"LOGGING.loggers.(pkg.mod).level"  -> [LOGGING loggers pkg.mod level]
//
// A token that starts with "(" runs up to the next ")" and becomes a single
// segment, so keys containing literal dots can be addressed. Parentheses do
// not nest.
//
// Digit-only tokens with a leading zero and more than one digit stay keys
// ("007" is a key, "0" and "7" are indexes).
package pathexpr
