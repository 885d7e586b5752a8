// Package lexer tokenizes brash source text into the token stream consumed
// by internal/parser, per spec.md §4.2.
package lexer

import "fmt"

// TokenType identifies the lexical category of a Token. Grounded on the
// teacher's internal/lexer/token.go TokenType enumeration and String/
// keyword-table conventions.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	IDENT
	INT
	FLOAT
	STRING
	ISTRING // $"..." interpolated string
	MLSTRING // [[ ... ]] multi-line string
	CHAR

	// Keywords, per spec.md §6.
	LET
	MUT
	CONST
	FN
	ASYNC
	AWAIT
	SPAWN
	STRUCT
	ENUM
	IMPL
	IF
	ELIF
	ELSE
	FOR
	WHILE
	IN
	STEP
	BREAK
	CONTINUE
	RETURN
	TRY
	CATCH
	THROW
	IMPORT
	FROM
	END
	SELF
	NULL
	EXEC
	CMD
	VOID
	PUB
	STATIC
	SH
	AS
	TRUE
	FALSE

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	EQ       // ==
	NEQ      // !=
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	AND      // &&
	OR       // ||
	BANG     // !
	ASSIGN   // =
	ARROW    // ->
	FARROW   // =>
	DOT      // .
	QDOT     // ?.
	QQUESTION // ??
	QUESTION // ?
	DOTDOT   // ..
	PIPE     // |

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	SEMICOLON
	NEWLINE

	// String interpolation markers: $"..." opens an interpolated string,
	// [[ ... ]] opens a multi-line string.
	ISTRING_START
)

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING",
	ISTRING: "ISTRING", MLSTRING: "MLSTRING", CHAR: "CHAR",

	LET: "let", MUT: "mut", CONST: "const", FN: "fn", ASYNC: "async",
	AWAIT: "await", SPAWN: "spawn", STRUCT: "struct", ENUM: "enum", IMPL: "impl",
	IF: "if", ELIF: "elif", ELSE: "else", FOR: "for", WHILE: "while", IN: "in",
	STEP: "step", BREAK: "break", CONTINUE: "continue", RETURN: "return",
	TRY: "try", CATCH: "catch", THROW: "throw", IMPORT: "import", FROM: "from",
	END: "end", SELF: "self", NULL: "null", EXEC: "exec", CMD: "cmd",
	VOID: "void", PUB: "pub", STATIC: "static", SH: "sh", AS: "as",
	TRUE: "true", FALSE: "false",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LTE: "<=", GTE: ">=",
	AND: "&&", OR: "||", BANG: "!", ASSIGN: "=", ARROW: "->", FARROW: "=>",
	DOT: ".", QDOT: "?.", QQUESTION: "??", QUESTION: "?", DOTDOT: "..", PIPE: "|",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", COLON: ":", SEMICOLON: ";",
	NEWLINE: "\\n", ISTRING_START: "$\"",
}

func (t TokenType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"let": LET, "mut": MUT, "const": CONST, "fn": FN, "async": ASYNC,
	"await": AWAIT, "spawn": SPAWN, "struct": STRUCT, "enum": ENUM, "impl": IMPL,
	"if": IF, "elif": ELIF, "else": ELSE, "for": FOR, "while": WHILE, "in": IN,
	"step": STEP, "break": BREAK, "continue": CONTINUE, "return": RETURN,
	"try": TRY, "catch": CATCH, "throw": THROW, "import": IMPORT, "from": FROM,
	"end": END, "self": SELF, "null": NULL, "exec": EXEC, "cmd": CMD,
	"void": VOID, "pub": PUB, "static": STATIC, "sh": SH, "as": AS,
	"true": TRUE, "false": FALSE,
}

// LookupIdent reports the keyword TokenType for ident, or IDENT if it is
// not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexical token with its source position, per spec.md §3.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	File    string
}

func (t Token) Position() string {
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s, %q, %s}", t.Type, t.Literal, t.Position())
}
