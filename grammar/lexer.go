package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var DeclLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},
		{"BlockComment", `/\*[\s\S]*?\*/`, nil},

		// Keywords and Identifiers (order matters)
		{"Ident", `[a-zA-Z_$][a-zA-Z0-9_$]*`, nil},

		// Literals
		{"Number", `0x[0-9a-fA-F]+|[0-9]+(\.[0-9]+)?`, nil},
		{"String", `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`, nil},

		// Arrow must come before "=" punctuation
		{"Arrow", `=>`, nil},

		// Punctuation
		{"Punctuation", `[@{}()\[\]<>:;,=.?|]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
