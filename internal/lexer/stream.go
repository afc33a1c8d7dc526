package lexer

import "github.com/BLamy/does-it-throw/internal/token"

// All drains the lexer into a token slice terminated by a single EOF
// token, mirroring funxy's ctx.TokenStream shape (internal/pipeline).
func (l *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return out
}
