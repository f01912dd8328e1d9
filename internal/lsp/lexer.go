package lsp

import (
	"strings"

	"bfc/internal/token"

	"github.com/alecthomas/participle/v2/lexer"
)

// bfLexer classifies Brainfuck source into the eight token kinds plus a
// catch-all Comment run, using the same lexer.MustStateful construction
// the teacher's grammar package uses — here with a single "Root" state,
// since BF's tokens never depend on lexer mode. There is no grammar/AST
// built on top of it, unlike the full expression-language grammar this
// lexer package is descended from: the compiler core's own parser
// (internal/parser) scans bytes directly into IR and never touches this.
// This lexer exists only to drive LSP semantic-token highlighting, where
// "what kind of source byte is this" is exactly the question being asked.
var bfLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Increment", `\+`, nil},
		{"Decrement", `-`, nil},
		{"PointerIncrement", `>`, nil},
		{"PointerDecrement", `<`, nil},
		{"Read", `,`, nil},
		{"Write", `\.`, nil},
		{"LoopOpen", `\[`, nil},
		{"LoopClose", `\]`, nil},
		{"Comment", `[^+\-><,.\[\]]+`, nil},
	},
})

// lexedToken pairs a classified token with the line/column participle
// computed for it, so the LSP can build semantic token ranges without
// redoing offset-to-position arithmetic. The Kind comes from embedding
// token.Token, classified from the run's first byte rather than from the
// participle rule name: each rule matches a single byte class, so the two
// are equivalent, and this way the LSP shares its notion of "what kind of
// byte is this" with the rest of the compiler instead of re-deriving it.
type lexedToken struct {
	token.Token
	Line   int // 1-based
	Column int // 1-based
	Length int
}

func tokenize(source string) ([]lexedToken, error) {
	lex, err := bfLexer.Lex("", strings.NewReader(source))
	if err != nil {
		return nil, err
	}

	var tokens []lexedToken
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		if len(tok.Value) == 0 {
			continue
		}

		tokens = append(tokens, lexedToken{
			Token:  token.Token{Kind: token.Classify(tok.Value[0]), Offset: tok.Pos.Offset},
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
			Length: len([]rune(tok.Value)),
		})
	}

	return tokens, nil
}
