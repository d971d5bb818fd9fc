// Package scanner tokenizes Lox source text for the parser to consume.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/mna/loxi/lang/token"
)

// ErrorHandler receives a lexical error at the given source line.
type ErrorHandler func(line int, msg string)

// Scanner tokenizes a single source file.
type Scanner struct {
	src []byte
	err ErrorHandler

	start   int // start offset of the token currently being scanned
	current int // offset of the next unread byte
	line    int // current 1-based line number
}

// Init (re)initializes the scanner to tokenize src, reporting lexical errors
// through errHandler.
func (s *Scanner) Init(src []byte, errHandler ErrorHandler) {
	s.src = src
	s.err = errHandler
	s.start = 0
	s.current = 0
	s.line = 1
}

// ScanTokens scans the whole source and returns every token, including the
// final EOF.
func ScanTokens(src []byte, errHandler ErrorHandler) []token.Token {
	var s Scanner
	s.Init(src, errHandler)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

// match consumes the next byte if it equals want.
func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) errorf(format string, args ...any) {
	if s.err != nil {
		s.err(s.line, fmt.Sprintf(format, args...))
	}
}

func (s *Scanner) tok(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: string(s.src[s.start:s.current]), Line: s.line}
}

// Scan returns the next token in the source.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.current
	if s.atEnd() {
		return token.Token{Kind: token.EOF, Line: s.line}
	}

	c := s.advance()
	switch {
	case isDigit(c):
		return s.number()
	case isAlpha(c):
		return s.identifier()
	}

	switch c {
	case '(':
		return s.tok(token.LPAREN)
	case ')':
		return s.tok(token.RPAREN)
	case '{':
		return s.tok(token.LBRACE)
	case '}':
		return s.tok(token.RBRACE)
	case ',':
		return s.tok(token.COMMA)
	case '.':
		return s.tok(token.DOT)
	case '-':
		return s.tok(token.MINUS)
	case '+':
		return s.tok(token.PLUS)
	case ';':
		return s.tok(token.SEMI)
	case '*':
		return s.tok(token.STAR)
	case '?':
		return s.tok(token.QUESTION)
	case ':':
		return s.tok(token.COLON)
	case '!':
		if s.match('=') {
			return s.tok(token.BANG_EQ)
		}
		return s.tok(token.BANG)
	case '=':
		if s.match('=') {
			return s.tok(token.EQ_EQ)
		}
		return s.tok(token.EQ)
	case '<':
		if s.match('=') {
			return s.tok(token.LT_EQ)
		}
		return s.tok(token.LT)
	case '>':
		if s.match('=') {
			return s.tok(token.GT_EQ)
		}
		return s.tok(token.GT)
	case '/':
		// Line and nestable block comments are consumed by
		// skipWhitespaceAndComments; reaching here means a plain division.
		return s.tok(token.SLASH)
	case '"':
		return s.string()
	}

	s.errorf("Unexpected character.")
	return s.tok(token.ILLEGAL)
}

// skipWhitespaceAndComments advances past spaces, tabs, CR/FF/VT, newlines
// (counting lines), "//" line comments and nestable "/* */" block comments.
func (s *Scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		c := s.peek()
		switch c {
		case ' ', '\t', '\r', '\f', '\v':
			s.current++
		case '\n':
			s.line++
			s.current++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.current++
				}
			} else if s.peekNext() == '*' {
				s.blockComment()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) blockComment() {
	s.current += 2 // consume "/*"
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			s.errorf("Unterminated block comment.")
			return
		}
		switch {
		case s.peek() == '/' && s.peekNext() == '*':
			s.current += 2
			depth++
		case s.peek() == '*' && s.peekNext() == '/':
			s.current += 2
			depth--
		case s.peek() == '\n':
			s.line++
			s.current++
		default:
			s.current++
		}
	}
}

func (s *Scanner) string() token.Token {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}

	if s.atEnd() {
		s.errorf("Unterminated string.")
		return s.tok(token.ILLEGAL)
	}

	s.current++ // closing quote
	val := string(s.src[s.start+1 : s.current-1])
	t := s.tok(token.STRING)
	t.Literal = val
	return t
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++ // consume '.'
		for isDigit(s.peek()) {
			s.current++
		}
	}

	lit := string(s.src[s.start:s.current])
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		s.errorf("Invalid number literal %q.", lit)
	}
	t := s.tok(token.NUMBER)
	t.Literal = v
	return t
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}
	lit := string(s.src[s.start:s.current])
	return s.tok(token.LookupIdent(lit))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z'
}
