// Package lexer turns ECMAScript source text into a token stream plus a
// parallel comment index. Grounded on funvibe/funxy's internal/lexer
// (rune-at-a-time scanner with line/column bookkeeping), extended with
// byte offsets and comment capture since this analyzer's data model
// (spec.md §3) needs both.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BLamy/does-it-throw/internal/token"
)

// CommentKind distinguishes how a captured comment can be used downstream:
// doc blocks feed the §4.4 reconciler, everything else feeds §4.7 pragmas.
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
	DocComment // a block comment starting with "/**"
)

// Comment is one captured `//` or `/* */` run. Text excludes the
// delimiters. StartOffset/EndOffset are byte offsets of the whole
// comment including delimiters, so proximity and "immediately
// preceding" checks (spec.md §4.1, §4.7) can compare against
// adjacent node spans directly.
type Comment struct {
	Kind        CommentKind
	Text        string
	StartOffset int
	EndOffset   int
	StartLine   int
	EndLine     int
}

// Lexer is a hand-rolled scanner over UTF-8 source text.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int

	comments []Comment
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Comments returns every comment captured during scanning, in source order.
func (l *Lexer) Comments() []Comment { return l.comments }

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.readPosition
	for i := 0; i < offset; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.readLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.readBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) readLineComment() {
	start := l.position
	startLine := l.line
	l.readChar() // consume first '/'
	l.readChar() // consume second '/'
	textStart := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := l.input[textStart:l.position]
	l.comments = append(l.comments, Comment{
		Kind: LineComment, Text: text,
		StartOffset: start, EndOffset: l.position,
		StartLine: startLine, EndLine: startLine,
	})
}

func (l *Lexer) readBlockComment() {
	start := l.position
	startLine := l.line
	l.readChar() // '/'
	l.readChar() // '*'
	isDoc := l.ch == '*' && l.peekChar() != '/'
	textStart := l.position
	for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
		l.readChar()
	}
	text := l.input[textStart:l.position]
	endLine := l.line
	if l.ch != 0 {
		l.readChar() // '*'
		l.readChar() // '/'
	}
	kind := BlockComment
	if isDoc {
		kind = DocComment
	}
	l.comments = append(l.comments, Comment{
		Kind: kind, Text: text,
		StartOffset: start, EndOffset: l.position,
		StartLine: startLine, EndLine: endLine,
	})
}

func newToken(t token.Type, lexeme string, startOffset, endOffset, line, column int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Offset: startOffset, EndOffset: endOffset, Line: line, Column: column}
}

// NextToken scans and returns the next token, skipping whitespace and
// comments (comments are retained separately via Comments()).
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	startOffset := l.position
	line, column := l.line, l.column

	if l.ch == 0 {
		return newToken(token.EOF, "", startOffset, startOffset, line, column)
	}

	switch {
	case isLetter(l.ch) || l.ch == '$' || l.ch == '_':
		return l.readIdentifier(startOffset, line, column)
	case isDigit(l.ch):
		return l.readNumber(startOffset, line, column)
	case l.ch == '"' || l.ch == '\'':
		return l.readString(startOffset, line, column)
	case l.ch == '`':
		return l.readTemplate(startOffset, line, column)
	}

	var t token.Token
	switch l.ch {
	case '{':
		t = l.single(token.LBRACE, startOffset, line, column)
	case '}':
		t = l.single(token.RBRACE, startOffset, line, column)
	case '(':
		t = l.single(token.LPAREN, startOffset, line, column)
	case ')':
		t = l.single(token.RPAREN, startOffset, line, column)
	case '[':
		t = l.single(token.LBRACKET, startOffset, line, column)
	case ']':
		t = l.single(token.RBRACKET, startOffset, line, column)
	case ';':
		t = l.single(token.SEMI, startOffset, line, column)
	case ',':
		t = l.single(token.COMMA, startOffset, line, column)
	case ':':
		t = l.single(token.COLON, startOffset, line, column)
	case '?':
		if l.peekChar() == '.' {
			t = l.double(token.OPTIONAL_CHAIN, startOffset, line, column)
		} else if l.peekChar() == '?' {
			t = l.double(token.QUESTIONQUESTION, startOffset, line, column)
		} else {
			t = l.single(token.QUESTION, startOffset, line, column)
		}
	case '.':
		if l.peekChar() == '.' && l.peekAt(1) == '.' {
			l.readChar()
			l.readChar()
			t = l.single(token.DOTDOTDOT, startOffset, line, column)
		} else {
			t = l.single(token.DOT, startOffset, line, column)
		}
	case '=':
		switch {
		case l.peekChar() == '>':
			t = l.double(token.ARROW, startOffset, line, column)
		case l.peekChar() == '=' && l.peekAt(1) == '=':
			l.readChar()
			t = l.double(token.SEQ, startOffset, line, column)
		case l.peekChar() == '=':
			t = l.double(token.EQ, startOffset, line, column)
		default:
			t = l.single(token.ASSIGN, startOffset, line, column)
		}
	case '!':
		switch {
		case l.peekChar() == '=' && l.peekAt(1) == '=':
			l.readChar()
			t = l.double(token.SNEQ, startOffset, line, column)
		case l.peekChar() == '=':
			t = l.double(token.NEQ, startOffset, line, column)
		default:
			t = l.single(token.BANG, startOffset, line, column)
		}
	case '+':
		t = l.single(token.PLUS, startOffset, line, column)
	case '-':
		t = l.single(token.MINUS, startOffset, line, column)
	case '*':
		t = l.single(token.STAR, startOffset, line, column)
	case '/':
		t = l.single(token.SLASH, startOffset, line, column)
	case '%':
		t = l.single(token.PERCENT, startOffset, line, column)
	case '&':
		if l.peekChar() == '&' {
			t = l.double(token.AMPAMP, startOffset, line, column)
		} else {
			t = l.single(token.ILLEGAL, startOffset, line, column)
		}
	case '|':
		if l.peekChar() == '|' {
			t = l.double(token.PIPEPIPE, startOffset, line, column)
		} else {
			t = l.single(token.ILLEGAL, startOffset, line, column)
		}
	case '<':
		if l.peekChar() == '=' {
			t = l.double(token.LTE, startOffset, line, column)
		} else {
			t = l.single(token.LT, startOffset, line, column)
		}
	case '>':
		if l.peekChar() == '=' {
			t = l.double(token.GTE, startOffset, line, column)
		} else {
			t = l.single(token.GT, startOffset, line, column)
		}
	default:
		t = l.single(token.ILLEGAL, startOffset, line, column)
	}
	return t
}

func (l *Lexer) single(t token.Type, startOffset, line, column int) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	return newToken(t, lexeme, startOffset, l.position, line, column)
}

func (l *Lexer) double(t token.Type, startOffset, line, column int) token.Token {
	l.readChar()
	lexeme := l.input[startOffset:l.position+runeLen(l.ch)]
	l.readChar()
	return newToken(t, lexeme, startOffset, l.position, line, column)
}

func runeLen(r rune) int { return utf8.RuneLen(r) }

func (l *Lexer) readIdentifier(startOffset, line, column int) token.Token {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '$' || l.ch == '_' {
		l.readChar()
	}
	lexeme := l.input[startOffset:l.position]
	return newToken(token.LookupIdent(lexeme), lexeme, startOffset, l.position, line, column)
}

func (l *Lexer) readNumber(startOffset, line, column int) token.Token {
	for isDigit(l.ch) || l.ch == '.' || l.ch == 'x' || l.ch == 'X' ||
		(l.ch >= 'a' && l.ch <= 'f') || (l.ch >= 'A' && l.ch <= 'F') || l.ch == '_' {
		l.readChar()
	}
	lexeme := l.input[startOffset:l.position]
	return newToken(token.NUMBER, lexeme, startOffset, l.position, line, column)
}

func (l *Lexer) readString(startOffset, line, column int) token.Token {
	quote := l.ch
	l.readChar()
	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			sb.WriteRune(l.ch)
			l.readChar()
			if l.ch != 0 {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
	return newToken(token.STRING, sb.String(), startOffset, l.position, line, column)
}

// readTemplate scans a full template literal `...${expr}...` as one
// opaque token. Nested ${ } braces are depth-tracked only so an object
// literal inside an interpolation doesn't terminate the template early;
// the interpolation contents are not otherwise parsed (spec.md treats
// throws inside template interpolations as out of the pragmatic subset).
func (l *Lexer) readTemplate(startOffset, line, column int) token.Token {
	l.readChar() // opening backtick
	depth := 0
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if depth == 0 && l.ch == '`' {
			break
		}
		if l.ch == '$' && l.peekChar() == '{' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if depth > 0 && l.ch == '{' {
			depth++
			l.readChar()
			continue
		}
		if depth > 0 && l.ch == '}' {
			depth--
			l.readChar()
			continue
		}
		l.readChar()
	}
	if l.ch == '`' {
		l.readChar()
	}
	lexeme := l.input[startOffset:l.position]
	return newToken(token.TEMPLATE, lexeme, startOffset, l.position, line, column)
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
