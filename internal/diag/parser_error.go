// Package diag defines the typed failures surfaced by every stage of the interpreter.
package diag

import (
    "fmt"
    "unicode/utf8"

    "vela-lang/impl/internal/token"
)

// ParseKind identifies a lexical or syntactic failure.
type ParseKind int

const (
    UnexpectedToken ParseKind = iota
    MissingExpression
    EndOfFileUnexpected
    Custom
    UnrecognizedCharacter
    UnterminatedString
    TooDeep
)

func (k ParseKind) String() string {
    switch k {
    case UnexpectedToken: return "UnexpectedToken"
    case MissingExpression: return "MissingExpression"
    case EndOfFileUnexpected: return "EndOfFileUnexpected"
    case Custom: return "Custom"
    case UnrecognizedCharacter: return "UnrecognizedCharacter"
    case UnterminatedString: return "UnterminatedString"
    case TooDeep: return "TooDeep"
    }
    return "Unknown"
}

// ParserError is a failure of the lexer or the parser. Only the fields
// belonging to Kind are set.
type ParserError struct {
    Kind     ParseKind
    Expected string      // UnexpectedToken
    Found    token.Token // UnexpectedToken
    Char     rune        // UnrecognizedCharacter
    Byte     byte        // UnrecognizedCharacter, when the input is not valid UTF-8
    Limit    int         // TooDeep
    Message  string      // Custom
}

func (e *ParserError) Error() string {
    switch e.Kind {
    case UnexpectedToken:
        return fmt.Sprintf("Parsing error: unexpected token, expected %s but found %s %q", e.Expected, e.Found.Kind, e.Found.Value)
    case MissingExpression:
        return "Parsing error: expected expression not found expression"
    case EndOfFileUnexpected:
        return "Parsing error: Unexpected end of file"
    case UnrecognizedCharacter:
        if e.Char == utf8.RuneError && e.Byte != 0 { return fmt.Sprintf("Parsing error: unrecognized byte 0x%02x", e.Byte) }
        return fmt.Sprintf("Parsing error: unrecognized character %q", e.Char)
    case UnterminatedString:
        return "Parsing error: unterminated string"
    case TooDeep:
        return fmt.Sprintf("Parsing error: nesting exceeds maximum depth of %d", e.Limit)
    default:
        return "Parsing error: " + e.Message
    }
}

func NewUnexpectedToken(expected string, found token.Token) *ParserError {
    return &ParserError{Kind: UnexpectedToken, Expected: expected, Found: found}
}

func NewMissingExpression() *ParserError { return &ParserError{Kind: MissingExpression} }

func NewEndOfFile() *ParserError { return &ParserError{Kind: EndOfFileUnexpected} }

func NewCustom(format string, args ...interface{}) *ParserError {
    return &ParserError{Kind: Custom, Message: fmt.Sprintf(format, args...)}
}

func NewUnrecognizedCharacter(ch rune) *ParserError {
    return &ParserError{Kind: UnrecognizedCharacter, Char: ch}
}

// NewInvalidByte reports a byte that does not start a valid UTF-8 sequence.
func NewInvalidByte(b byte) *ParserError {
    return &ParserError{Kind: UnrecognizedCharacter, Char: utf8.RuneError, Byte: b}
}

func NewUnterminatedString() *ParserError { return &ParserError{Kind: UnterminatedString} }

func NewTooDeep(limit int) *ParserError { return &ParserError{Kind: TooDeep, Limit: limit} }
