package lexical

import (
	"fmt"
	"unicode/utf8"

	"github.com/ingzkp/zinc/diagnostics"
)

// Stream is a single-owner, stateful cursor over a byte buffer producing a
// lazy sequence of tokens terminated by EOF. It supports one-token
// lookahead via Peek/Next; lookahead is bounded to a single token.
type Stream struct {
	buf    []byte
	file   string
	offset int
	line   int
	column int

	peeked    *Token
	peekedErr *diagnostics.Diagnostic
}

// New creates a Stream over buf, attributing every Location it produces to
// file (its source path, for readable diagnostics).
func New(buf []byte, file string) *Stream {
	return &Stream{buf: buf, file: file, line: 1, column: 1}
}

func (s *Stream) loc() diagnostics.Location {
	return diagnostics.Location{File: s.file, Line: s.line, Column: s.column}
}

func (s *Stream) atEOF() bool { return s.offset >= len(s.buf) }

func (s *Stream) byteAt(n int) byte {
	i := s.offset + n
	if i < 0 || i >= len(s.buf) {
		return 0
	}
	return s.buf[i]
}

func (s *Stream) peekByte() byte     { return s.byteAt(0) }
func (s *Stream) peekByteN(n int) byte { return s.byteAt(n) }

func (s *Stream) advance() byte {
	if s.atEOF() {
		return 0
	}
	ch := s.buf[s.offset]
	s.offset++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func (s *Stream) errorf(loc diagnostics.Location, kind diagnostics.Kind, format string, args ...interface{}) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.CategoryLexical, kind, loc, fmt.Sprintf(format, args...))
}

// Peek returns the next token without consuming it, and a diagnostic if
// the underlying buffer could not be tokenized starting at the current
// position.
func (s *Stream) Peek() (Token, *diagnostics.Diagnostic) {
	if s.peeked != nil || s.peekedErr != nil {
		if s.peekedErr != nil {
			return Token{}, s.peekedErr
		}
		return *s.peeked, nil
	}
	tok, err := s.scanNext()
	if err != nil {
		s.peekedErr = err
		return Token{}, err
	}
	s.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the stream past it.
func (s *Stream) Next() (Token, *diagnostics.Diagnostic) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	if s.peekedErr != nil {
		err := s.peekedErr
		s.peekedErr = nil
		return Token{}, err
	}
	return s.scanNext()
}

// scanNext skips whitespace and comments, then dispatches to the
// appropriate sub-scanner based on the first significant byte: the word,
// integer, string, and symbol sub-parsers below.
func (s *Stream) scanNext() (Token, *diagnostics.Diagnostic) {
	for {
		s.skipWhitespace()
		if s.atEOF() {
			return Token{Lexeme: EOF, Location: s.loc()}, nil
		}

		ch := s.peekByte()
		if ch == '/' && s.peekByteN(1) == '/' {
			s.skipLineComment()
			continue
		}
		if ch == '/' && s.peekByteN(1) == '*' {
			if err := s.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	loc := s.loc()
	ch := s.peekByte()

	switch {
	case isIdentStart(ch):
		return s.scanWord(loc)
	case isDigit(ch):
		return s.scanNumber(loc)
	case ch == '"':
		return s.scanString(loc)
	default:
		return s.scanSymbol(loc)
	}
}

func (s *Stream) skipWhitespace() {
	for !s.atEOF() {
		switch s.peekByte() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

func (s *Stream) skipLineComment() {
	for !s.atEOF() && s.peekByte() != '\n' {
		s.advance()
	}
}

func (s *Stream) skipBlockComment() *diagnostics.Diagnostic {
	loc := s.loc()
	s.advance() // '/'
	s.advance() // '*'
	for {
		if s.atEOF() {
			return s.errorf(loc, diagnostics.KindUnterminatedComment, "unterminated block comment")
		}
		if s.peekByte() == '*' && s.peekByteN(1) == '/' {
			s.advance()
			s.advance()
			return nil
		}
		s.advance()
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= utf8.RuneSelf
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
