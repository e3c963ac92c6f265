package lexical

// Keyword is one of the source language's reserved words. `true`/`false`
// are not keywords here — they are boolean literals (see Lexeme), kept
// distinct from Keyword(k) in the Lexeme tagged union.
type Keyword string

const (
	KeywordLet      Keyword = "let"
	KeywordMut      Keyword = "mut"
	KeywordConst    Keyword = "const"
	KeywordStatic   Keyword = "static"
	KeywordType     Keyword = "type"
	KeywordStruct   Keyword = "struct"
	KeywordEnum     Keyword = "enum"
	KeywordFn       Keyword = "fn"
	KeywordImpl     Keyword = "impl"
	KeywordMod      Keyword = "mod"
	KeywordUse      Keyword = "use"
	KeywordAs       Keyword = "as"
	KeywordFor      Keyword = "for"
	KeywordIn       Keyword = "in"
	KeywordWhile    Keyword = "while"
	KeywordIf       Keyword = "if"
	KeywordElse     Keyword = "else"
	KeywordMatch    Keyword = "match"
	KeywordLoop     Keyword = "loop"
	KeywordBreak    Keyword = "break"
	KeywordContinue Keyword = "continue"
	KeywordReturn   Keyword = "return"
	KeywordSelfValue Keyword = "self"
	KeywordSelfType Keyword = "Self"
)

var keywords = map[string]Keyword{
	"let": KeywordLet, "mut": KeywordMut, "const": KeywordConst,
	"static": KeywordStatic, "type": KeywordType, "struct": KeywordStruct,
	"enum": KeywordEnum, "fn": KeywordFn, "impl": KeywordImpl, "mod": KeywordMod,
	"use": KeywordUse, "as": KeywordAs, "for": KeywordFor, "in": KeywordIn,
	"while": KeywordWhile, "if": KeywordIf, "else": KeywordElse, "match": KeywordMatch,
	"loop": KeywordLoop, "break": KeywordBreak, "continue": KeywordContinue,
	"return": KeywordReturn, "self": KeywordSelfValue, "Self": KeywordSelfType,
}

// LookupKeyword classifies a scanned word as a keyword, returning ok=false
// if it is an ordinary identifier (or the boolean literals true/false,
// which the word sub-parser intercepts before calling this).
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}
