package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // Lexeme; for strings and templates the cooked value
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number (rune index) where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown character or unterminated literal
	EOF     TokenType = "EOF"

	// Identifiers + Literals
	IDENT         TokenType = "IDENT"         // hack, ns, main
	PRIVATE_NAME  TokenType = "PRIVATE_NAME"  // #field
	NUMBER        TokenType = "NUMBER"        // 123, 0x1f, 1_000n
	STRING        TokenType = "STRING"        // "hello world"
	REGEX_LITERAL TokenType = "REGEX_LITERAL" // /ab+c/gi

	// Templates. A template without substitutions is a single TEMPLATE token;
	// otherwise HEAD, MIDDLE* and TAIL surround the substitution tokens.
	TEMPLATE        TokenType = "TEMPLATE"
	TEMPLATE_HEAD   TokenType = "TEMPLATE_HEAD"
	TEMPLATE_MIDDLE TokenType = "TEMPLATE_MIDDLE"
	TEMPLATE_TAIL   TokenType = "TEMPLATE_TAIL"

	// Operators
	ASSIGN                      TokenType = "="
	PLUS                        TokenType = "+"
	MINUS                       TokenType = "-"
	BANG                        TokenType = "!"
	TILDE                       TokenType = "~"
	ASTERISK                    TokenType = "*"
	EXPONENT                    TokenType = "**"
	SLASH                       TokenType = "/"
	PERCENT                     TokenType = "%"
	LT                          TokenType = "<"
	GT                          TokenType = ">"
	EQ                          TokenType = "=="
	NOT_EQ                      TokenType = "!="
	STRICT_EQ                   TokenType = "==="
	STRICT_NOT_EQ               TokenType = "!=="
	LE                          TokenType = "<="
	GE                          TokenType = ">="
	LEFT_SHIFT                  TokenType = "<<"
	RIGHT_SHIFT                 TokenType = ">>"
	UNSIGNED_RIGHT_SHIFT        TokenType = ">>>"
	BITWISE_AND                 TokenType = "&"
	PIPE                        TokenType = "|"
	BITWISE_XOR                 TokenType = "^"
	LOGICAL_AND                 TokenType = "&&"
	LOGICAL_OR                  TokenType = "||"
	COALESCE                    TokenType = "??"
	INC                         TokenType = "++"
	DEC                         TokenType = "--"
	DOT                         TokenType = "."
	QUESTION_DOT                TokenType = "?."
	SPREAD                      TokenType = "..."
	QUESTION                    TokenType = "?"
	ARROW                       TokenType = "=>"
	AT                          TokenType = "@"
	PLUS_ASSIGN                 TokenType = "+="
	MINUS_ASSIGN                TokenType = "-="
	ASTERISK_ASSIGN             TokenType = "*="
	EXPONENT_ASSIGN             TokenType = "**="
	SLASH_ASSIGN                TokenType = "/="
	PERCENT_ASSIGN              TokenType = "%="
	BITWISE_AND_ASSIGN          TokenType = "&="
	BITWISE_OR_ASSIGN           TokenType = "|="
	BITWISE_XOR_ASSIGN          TokenType = "^="
	LEFT_SHIFT_ASSIGN           TokenType = "<<="
	RIGHT_SHIFT_ASSIGN          TokenType = ">>="
	UNSIGNED_RIGHT_SHIFT_ASSIGN TokenType = ">>>="
	LOGICAL_AND_ASSIGN          TokenType = "&&="
	LOGICAL_OR_ASSIGN           TokenType = "||="
	COALESCE_ASSIGN             TokenType = "??="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	BREAK      TokenType = "BREAK"
	CASE       TokenType = "CASE"
	CATCH      TokenType = "CATCH"
	CLASS      TokenType = "CLASS"
	CONST      TokenType = "CONST"
	CONTINUE   TokenType = "CONTINUE"
	DEBUGGER   TokenType = "DEBUGGER"
	DEFAULT    TokenType = "DEFAULT"
	DELETE     TokenType = "DELETE"
	DO         TokenType = "DO"
	ELSE       TokenType = "ELSE"
	ENUM       TokenType = "ENUM"
	EXPORT     TokenType = "EXPORT"
	EXTENDS    TokenType = "EXTENDS"
	FALSE      TokenType = "FALSE"
	FINALLY    TokenType = "FINALLY"
	FOR        TokenType = "FOR"
	FUNCTION   TokenType = "FUNCTION"
	IF         TokenType = "IF"
	IMPORT     TokenType = "IMPORT"
	IN         TokenType = "IN"
	INSTANCEOF TokenType = "INSTANCEOF"
	LET        TokenType = "LET"
	NEW        TokenType = "NEW"
	NULL       TokenType = "NULL"
	RETURN     TokenType = "RETURN"
	SUPER      TokenType = "SUPER"
	SWITCH     TokenType = "SWITCH"
	THIS       TokenType = "THIS"
	THROW      TokenType = "THROW"
	TRUE       TokenType = "TRUE"
	TRY        TokenType = "TRY"
	TYPEOF     TokenType = "TYPEOF"
	VAR        TokenType = "VAR"
	VOID       TokenType = "VOID"
	WHILE      TokenType = "WHILE"
	WITH       TokenType = "WITH"
	YIELD      TokenType = "YIELD"
	AWAIT      TokenType = "AWAIT"
)

// Contextual words (type, from, as, of, async, ...) stay IDENT; consumers
// match them by literal.
var keywords = map[string]TokenType{
	"break":      BREAK,
	"case":       CASE,
	"catch":      CATCH,
	"class":      CLASS,
	"const":      CONST,
	"continue":   CONTINUE,
	"debugger":   DEBUGGER,
	"default":    DEFAULT,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"enum":       ENUM,
	"export":     EXPORT,
	"extends":    EXTENDS,
	"false":      FALSE,
	"finally":    FINALLY,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"import":     IMPORT,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"let":        LET,
	"new":        NEW,
	"null":       NULL,
	"return":     RETURN,
	"super":      SUPER,
	"switch":     SWITCH,
	"this":       THIS,
	"throw":      THROW,
	"true":       TRUE,
	"try":        TRY,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
	"with":       WITH,
	"yield":      YIELD,
	"await":      AWAIT,
}

// punctuators is ordered longest first so the scanner takes the maximal munch.
var punctuators = []TokenType{
	UNSIGNED_RIGHT_SHIFT_ASSIGN,
	STRICT_EQ, STRICT_NOT_EQ, UNSIGNED_RIGHT_SHIFT, SPREAD, EXPONENT_ASSIGN,
	LEFT_SHIFT_ASSIGN, RIGHT_SHIFT_ASSIGN, LOGICAL_AND_ASSIGN, LOGICAL_OR_ASSIGN, COALESCE_ASSIGN,
	EQ, NOT_EQ, LE, GE, LEFT_SHIFT, RIGHT_SHIFT, LOGICAL_AND, LOGICAL_OR,
	COALESCE, INC, DEC, ARROW, EXPONENT, QUESTION_DOT,
	PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
	BITWISE_AND_ASSIGN, BITWISE_OR_ASSIGN, BITWISE_XOR_ASSIGN,
	ASSIGN, PLUS, MINUS, BANG, TILDE, ASTERISK, SLASH, PERCENT, LT, GT,
	BITWISE_AND, PIPE, BITWISE_XOR, DOT, QUESTION, AT,
	COMMA, SEMICOLON, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved word token.
func IsKeyword(t TokenType) bool {
	_, ok := keywords[strings.ToLower(string(t))]
	return ok
}

// Lexer holds the state of the scanner.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char's byte offset)
	readPosition int  // current reading position in input (byte offset after current char)
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number (rune index on l.line)

	prev TokenType // last significant token, decides regex vs. division
	// braces tracks open '{' and template substitutions so a '}' knows
	// whether it closes a block or resumes a template.
	braces []bool
}

// NewLexer creates a new Lexer.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, prev: ILLEGAL}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The last token is always EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// readChar advances one byte, keeping line and rune column current.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	if l.ch&0xC0 != 0x80 {
		l.column++
	}
}

// peekChar looks ahead in the input without consuming the character.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// skipTrivia consumes whitespace and comments. It returns false when a block
// comment is left unterminated.
func (l *Lexer) skipTrivia() bool {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch >= utf8.RuneSelf && l.atSpace():
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			for end := l.position + size; l.position < end; {
				l.readChar()
			}
			if r == '\u2028' || r == '\u2029' {
				l.line++
				l.column = 1
			}
		case l.ch == '/' && l.peekChar() == '/':
			l.skipComment()
		case l.ch == '/' && l.peekChar() == '*':
			if !l.skipMultilineComment() {
				return false
			}
		case l.position == 0 && l.ch == '#' && l.peekChar() == '!':
			l.skipComment()
		default:
			return true
		}
	}
	return true
}

func (l *Lexer) atSpace() bool {
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return isSpace(r)
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	startLine, startCol, startPos := l.line, l.column, l.position
	if !l.skipTrivia() {
		return l.emit(Token{Type: ILLEGAL, Literal: "Unterminated multiline comment", Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position})
	}

	startLine, startCol, startPos = l.line, l.column, l.position
	tok := Token{Line: startLine, Column: startCol, StartPos: startPos}

	if l.atEOF() {
		tok.Type, tok.EndPos = EOF, l.position
		return tok
	}

	switch {
	case l.atIdentifierStart():
		word, escaped, ok := l.readIdentifier()
		tok.Type = LookupIdent(word)
		if escaped || l.prev == DOT || l.prev == QUESTION_DOT {
			// Property names are identifiers even when they spell a keyword.
			tok.Type = IDENT
		}
		tok.Literal = word
		if !ok {
			tok.Type, tok.Literal = ILLEGAL, "Invalid Unicode escape sequence"
		}
	case l.ch == '#' && isLetter(l.peekChar()):
		l.readChar()
		word, _, ok := l.readIdentifier()
		tok.Type, tok.Literal = PRIVATE_NAME, "#"+word
		if !ok {
			tok.Type, tok.Literal = ILLEGAL, "Invalid Unicode escape sequence"
		}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		tok.Type, tok.Literal = NUMBER, l.readNumber()
	case l.ch == '"' || l.ch == '\'':
		str, ok := l.readString(l.ch)
		tok.Type, tok.Literal = STRING, str
		if !ok {
			tok.Type, tok.Literal = ILLEGAL, "Unterminated string literal"
		}
	case l.ch == '`':
		l.readChar()
		tok.Type, tok.Literal = l.readTemplate(TEMPLATE, TEMPLATE_HEAD)
	case l.ch == '}' && len(l.braces) > 0 && l.braces[len(l.braces)-1]:
		l.braces = l.braces[:len(l.braces)-1]
		l.readChar()
		tok.Type, tok.Literal = l.readTemplate(TEMPLATE_TAIL, TEMPLATE_MIDDLE)
	case l.ch == '/' && l.regexAllowed():
		lit, ok := l.readRegex()
		tok.Type, tok.Literal = REGEX_LITERAL, lit
		if !ok {
			tok.Type, tok.Literal = ILLEGAL, "Invalid regular expression literal"
		}
	default:
		tok.Type = l.readPunctuator()
		tok.Literal = l.input[startPos:l.position]
		switch tok.Type {
		case LBRACE:
			l.braces = append(l.braces, false)
		case RBRACE:
			if len(l.braces) > 0 {
				l.braces = l.braces[:len(l.braces)-1]
			}
		case ILLEGAL:
			_, size := utf8.DecodeRuneInString(l.input[startPos:])
			for l.position < startPos+size {
				l.readChar()
			}
			tok.Literal = l.input[startPos:l.position]
		}
	}

	tok.EndPos = l.position
	return l.emit(tok)
}

func (l *Lexer) emit(tok Token) Token {
	l.prev = tok.Type
	return tok
}

// regexAllowed decides whether a '/' starts a regular expression by looking at
// the previous significant token.
func (l *Lexer) regexAllowed() bool {
	switch l.prev {
	case IDENT, PRIVATE_NAME, NUMBER, STRING, REGEX_LITERAL, TEMPLATE, TEMPLATE_TAIL,
		RPAREN, RBRACKET, RBRACE, THIS, SUPER, TRUE, FALSE, NULL, INC, DEC:
		return false
	}
	return true
}

func (l *Lexer) readPunctuator() TokenType {
	rest := l.input[l.position:]
	for _, p := range punctuators {
		if !strings.HasPrefix(rest, string(p)) {
			continue
		}
		// a?.5:b is a conditional, not optional chaining.
		if p == QUESTION_DOT && len(rest) > 2 && isDigit(rest[2]) {
			continue
		}
		for i := 0; i < len(p); i++ {
			l.readChar()
		}
		return p
	}
	l.readChar()
	return ILLEGAL
}

// atIdentifierStart reports whether an identifier begins at the current
// position: an ASCII letter, '_', '$', a Unicode letter or a \u escape.
func (l *Lexer) atIdentifierStart() bool {
	switch {
	case l.ch == '\\':
		return l.peekChar() == 'u'
	case l.ch < utf8.RuneSelf:
		return isLetter(l.ch)
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return isIDStart(r)
}

// readIdentifier reads an identifier and returns its name with \u escapes
// decoded. escaped reports whether an escape was present; ok is false when an
// escape is malformed or decodes to a character identifiers cannot contain.
func (l *Lexer) readIdentifier() (name string, escaped, ok bool) {
	var b strings.Builder
	ok = true
	for !l.atEOF() {
		first := b.Len() == 0
		switch {
		case l.ch == '\\':
			if l.peekChar() != 'u' {
				return b.String(), escaped, false
			}
			escaped = true
			l.readChar()
			var esc strings.Builder
			if !l.readEscape(&esc) {
				return b.String(), escaped, false
			}
			r, _ := utf8.DecodeRuneInString(esc.String())
			if first && !isIDStart(r) || !isIDPart(r) {
				ok = false
			}
			b.WriteRune(r)
		case l.ch < utf8.RuneSelf:
			if !isLetter(l.ch) && !isDigit(l.ch) {
				return b.String(), escaped, ok
			}
			b.WriteByte(l.ch)
			l.readChar()
		default:
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			if !isIDPart(r) {
				return b.String(), escaped, ok
			}
			b.WriteString(l.input[l.position : l.position+size])
			for end := l.position + size; l.position < end; {
				l.readChar()
			}
		}
	}
	return b.String(), escaped, ok
}

// readNumber reads a numeric literal: decimal with fraction and exponent,
// 0x/0o/0b prefixed integers, numeric separators and the BigInt suffix.
func (l *Lexer) readNumber() string {
	startPos := l.position
	base := 10
	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	for isDigitForBase(l.ch, base) || l.ch == '_' {
		l.readChar()
	}
	if base == 10 {
		if l.ch == '.' {
			l.readChar()
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		}
	}
	if l.ch == 'n' {
		l.readChar()
	}
	return l.input[startPos:l.position]
}

// readString reads a string literal enclosed in the given quote character and
// returns its cooked value. Success is false if the string is unterminated.
func (l *Lexer) readString(quote byte) (string, bool) {
	var builder strings.Builder
	l.readChar() // opening quote
	for {
		switch l.ch {
		case quote:
			l.readChar()
			return builder.String(), true
		case 0, '\n', '\r':
			if l.atEOF() || l.ch != 0 {
				return "", false
			}
			builder.WriteByte(l.ch)
			l.readChar()
		case '\\':
			l.readChar()
			if !l.readEscape(&builder) {
				return "", false
			}
		default:
			builder.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readTemplate reads template characters after a '`' or a substitution's
// closing '}'. It returns end when the template closes and cont when a new
// substitution opens.
func (l *Lexer) readTemplate(end, cont TokenType) (TokenType, string) {
	var builder strings.Builder
	for {
		switch {
		case l.atEOF():
			return ILLEGAL, "Unterminated template literal"
		case l.ch == '`':
			l.readChar()
			return end, builder.String()
		case l.ch == '$' && l.peekChar() == '{':
			l.readChar()
			l.readChar()
			l.braces = append(l.braces, true)
			return cont, builder.String()
		case l.ch == '\\':
			l.readChar()
			if !l.readEscape(&builder) {
				return ILLEGAL, "Unterminated template literal"
			}
		default:
			builder.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readEscape decodes the escape sequence following a backslash.
func (l *Lexer) readEscape(b *strings.Builder) bool {
	switch l.ch {
	case 0:
		return !l.atEOF() && l.writeAndAdvance(b, 0)
	case 'n':
		return l.writeAndAdvance(b, '\n')
	case 't':
		return l.writeAndAdvance(b, '\t')
	case 'r':
		return l.writeAndAdvance(b, '\r')
	case 'b':
		return l.writeAndAdvance(b, '\b')
	case 'f':
		return l.writeAndAdvance(b, '\f')
	case 'v':
		return l.writeAndAdvance(b, '\v')
	case '0':
		if !isDigit(l.peekChar()) {
			return l.writeAndAdvance(b, 0)
		}
	case '\r':
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
		}
		return true
	case '\n':
		l.readChar()
		return true
	case 'x':
		l.readChar()
		return l.readHexEscape(b, 2)
	case 'u':
		l.readChar()
		if l.ch == '{' {
			l.readChar()
			start := l.position
			for isHexDigit(l.ch) {
				l.readChar()
			}
			if l.ch != '}' {
				return false
			}
			code, err := strconv.ParseUint(l.input[start:l.position], 16, 32)
			l.readChar()
			if err != nil {
				return false
			}
			b.WriteRune(rune(code))
			return true
		}
		return l.readHexEscape(b, 4)
	}
	return l.writeAndAdvance(b, l.ch)
}

func (l *Lexer) readHexEscape(b *strings.Builder, n int) bool {
	start := l.position
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			return false
		}
		l.readChar()
	}
	code, err := strconv.ParseUint(l.input[start:l.position], 16, 32)
	if err != nil {
		return false
	}
	b.WriteRune(rune(code))
	return true
}

func (l *Lexer) writeAndAdvance(b *strings.Builder, ch byte) bool {
	b.WriteByte(ch)
	l.readChar()
	return true
}

// readRegex reads a regular expression literal including its flags.
func (l *Lexer) readRegex() (string, bool) {
	start := l.position
	l.readChar() // opening '/'
	inClass := false
	for {
		switch l.ch {
		case 0, '\n', '\r':
			if l.atEOF() || l.ch != 0 {
				return "", false
			}
		case '\\':
			l.readChar()
			if l.ch == '\n' || l.atEOF() {
				return "", false
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.readChar()
				return l.readRegexFlags(start)
			}
		}
		l.readChar()
	}
}

// readRegexFlags consumes the flags after the closing '/'. Unknown or
// repeated flags make the literal invalid.
func (l *Lexer) readRegexFlags(start int) (string, bool) {
	seen := make(map[byte]bool)
	ok := true
	for isLetter(l.ch) {
		if !strings.ContainsRune("dgimsuyv", rune(l.ch)) || seen[l.ch] {
			ok = false
		}
		seen[l.ch] = true
		l.readChar()
	}
	return l.input[start:l.position], ok
}

// skipComment reads until the end of the line.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// skipMultilineComment consumes a block comment including both delimiters.
// Returns false when EOF is reached first.
func (l *Lexer) skipMultilineComment() bool {
	l.readChar() // '/'
	l.readChar() // '*'
	for {
		if l.atEOF() {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

// isLetter checks if the ASCII character can start an identifier.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

// isIDStart reports whether r may start an identifier.
func isIDStart(r rune) bool {
	if r < utf8.RuneSelf {
		return isLetter(byte(r))
	}
	return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_ID_Start)
}

// isIDPart reports whether r may continue an identifier.
func isIDPart(r rune) bool {
	if r < utf8.RuneSelf {
		return isLetter(byte(r)) || isDigit(byte(r))
	}
	return isIDStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) || r == '\u200c' || r == '\u200d'
}

// isSpace reports whether r is whitespace or a line terminator outside ASCII.
func isSpace(r rune) bool {
	return unicode.Is(unicode.Zs, r) || r == '\u2028' || r == '\u2029' || r == '\uFEFF'
}

// isDigit checks if the character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isHexDigit checks if the character is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// isDigitForBase checks if the character is a valid digit for the given base.
func isDigitForBase(ch byte, base int) bool {
	switch base {
	case 16:
		return isHexDigit(ch)
	case 10:
		return isDigit(ch)
	case 8:
		return '0' <= ch && ch <= '7'
	case 2:
		return ch == '0' || ch == '1'
	default:
		return false
	}
}
