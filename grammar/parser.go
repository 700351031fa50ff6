package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(DeclLexer),
		participle.Elide("Whitespace", "Comment", "BlockComment"),
		participle.UseLookahead(4),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseString(path, string(source))
}

func ParseString(filename string, source string) (*File, error) {
	return parser.ParseString(filename, source)
}
