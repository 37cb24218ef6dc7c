/*
Package lexer tokenizes an SPDX license expression.

Tokenizing happens in two layers: a small lexmachine grammar in rawscan.go
splits the input into maximal runs of non-whitespace, non-paren,
non-slash characters ("words") plus the single-character ( ) and /
tokens, and Lexer in lexer.go applies every SPDX-specific rule on top of
that raw stream — keyword recognition, registry lookups,
DocumentRef/LicenseRef/AdditionRef decomposition, the imprecise-name
fallback, and trailing-"+" attachment.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexer
