// Package token defines the lexical vocabulary shared by the lexer and parser.
package token

// Kind classifies a Token.
type Kind int

const (
    EOF Kind = iota

    OpenParen
    CloseParen
    OpenBrace
    CloseBrace
    Dot
    Semicolon

    Binary

    Equals
    EqualsEquals
    NotEquals
    LessThan
    LessThanEquals
    GreaterThan
    GreaterThanEquals

    Number
    String
    Null
    Identifier

    // keywords
    If
    Else
    Until
    Unless
    While
    Work
    Interop
    Return
    Break
    Continue
    Def
    Function
    Async
    Import
)

var names = [...]string{
    EOF:               "EOF",
    OpenParen:         "OpenParen",
    CloseParen:        "CloseParen",
    OpenBrace:         "OpenBrace",
    CloseBrace:        "CloseBrace",
    Dot:               "Dot",
    Semicolon:         "Semicolon",
    Binary:            "Binary",
    Equals:            "Equals",
    EqualsEquals:      "EqualsEquals",
    NotEquals:         "NotEquals",
    LessThan:          "LessThan",
    LessThanEquals:    "LessThanEquals",
    GreaterThan:       "GreaterThan",
    GreaterThanEquals: "GreaterThanEquals",
    Number:            "Number",
    String:            "String",
    Null:              "Null",
    Identifier:        "Identifier",
    If:                "If",
    Else:              "Else",
    Until:             "Until",
    Unless:            "Unless",
    While:             "While",
    Work:              "Work",
    Interop:           "Interop",
    Return:            "Return",
    Break:             "Break",
    Continue:          "Continue",
    Def:               "Def",
    Function:          "Function",
    Async:             "Async",
    Import:            "Import",
}

func (k Kind) String() string {
    if k >= 0 && int(k) < len(names) && names[k] != "" { return names[k] }
    return "Unknown"
}

// MarshalText renders the kind by name so token dumps stay readable.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Token is a classified lexical unit.
type Token struct {
    Kind  Kind   `json:"type"`
    Value string `json:"value"`
}

var keywords = map[string]Kind{
    "if":       If,
    "else":     Else,
    "until":    Until,
    "unless":   Unless,
    "while":    While,
    "work":     Work,
    "interop":  Interop,
    "return":   Return,
    "break":    Break,
    "continue": Continue,
    "def":      Def,
    "function": Function,
    "async":    Async,
    "import":   Import,
}

// LookupIdent classifies a scanned alphanumeric run as a keyword or Identifier.
func LookupIdent(word string) Kind {
    if k, ok := keywords[word]; ok { return k }
    return Identifier
}

// IsComparison reports whether k is one of the comparison operator kinds.
func (k Kind) IsComparison() bool {
    switch k {
    case EqualsEquals, NotEquals, LessThan, LessThanEquals, GreaterThan, GreaterThanEquals:
        return true
    }
    return false
}
