package lsp

import "bfc/internal/token"

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based, matching the wire protocol.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

// tokenTypeName maps a source token kind to the semantic token type the
// editor should color it with. Increment/decrement and pointer motion read
// as arithmetic operators; the matched brackets read as control-flow
// keywords since that is what a loop is; read/write read as the two
// "calls" this language has. Comment runs are not tokens worth coloring.
func tokenTypeName(kind token.Kind) (string, bool) {
	switch kind {
	case token.Increment, token.Decrement, token.PointerIncrement, token.PointerDecrement:
		return "operator", true
	case token.LoopOpen, token.LoopClose:
		return "keyword", true
	case token.Read, token.Write:
		return "function", true
	default:
		return "", false
	}
}

func collectSemanticTokens(source string) ([]SemanticToken, error) {
	lexed, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	var tokens []SemanticToken
	for _, lt := range lexed {
		name, ok := tokenTypeName(lt.Kind)
		if !ok {
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:      uint32(lt.Line - 1),
			StartChar: uint32(lt.Column - 1),
			Length:    uint32(lt.Length),
			TokenType: indexOf(name, SemanticTokenTypes),
		})
	}

	return tokens, nil
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
