package lexer

import (
    "unicode/utf8"

    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/token"
)

// Lex converts source into a flat token stream terminated by a single EOF
// token. Unrecognized characters and unterminated strings are reported as
// *diag.ParserError.
func Lex(src string) ([]token.Token, error) {
    var out []token.Token
    i := 0
    n := len(src)

    peek := func(off int) byte {
        j := i + off
        if j >= n || j < 0 {
            return 0
        }
        return src[j]
    }

    emit := func(kind token.Kind, lit string) { out = append(out, token.Token{Kind: kind, Value: lit}) }

    for i < n {
        ch := src[i]

        if isSkippable(ch) { i++; continue }

        if ch == '"' {
            start := i + 1
            i = start
            for i < n && src[i] != '"' { i++ }
            if i >= n { return nil, diag.NewUnterminatedString() }
            emit(token.String, src[start:i])
            i++
            continue
        }

        if isDigit(ch) {
            start := i
            for i < n && isDigit(src[i]) { i++ }
            if i < n && src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
                i++
                for i < n && isDigit(src[i]) { i++ }
            }
            emit(token.Number, src[start:i])
            continue
        }

        if isLetter(ch) {
            start := i
            for i < n && (isLetter(src[i]) || isDigit(src[i])) { i++ }
            word := src[start:i]
            emit(token.LookupIdent(word), word)
            continue
        }

        // Comparison operators, longest match first
        two := func(a, b byte, kind token.Kind) bool {
            if ch == a && peek(1) == b { emit(kind, src[i:i+2]); i += 2; return true }
            return false
        }
        if two('=', '=', token.EqualsEquals) || two('!', '=', token.NotEquals) ||
            two('<', '=', token.LessThanEquals) || two('>', '=', token.GreaterThanEquals) {
            continue
        }

        switch ch {
        case '*', '/', '-', '+', '%':
            emit(token.Binary, string(ch))
        case '(': emit(token.OpenParen, "(")
        case ')': emit(token.CloseParen, ")")
        case '{': emit(token.OpenBrace, "{")
        case '}': emit(token.CloseBrace, "}")
        case '.': emit(token.Dot, ".")
        case ';': emit(token.Semicolon, ";")
        case '=': emit(token.Equals, "=")
        case '<': emit(token.LessThan, "<")
        case '>': emit(token.GreaterThan, ">")
        default:
            r, size := utf8.DecodeRuneInString(src[i:])
            if r == utf8.RuneError && size == 1 { return nil, diag.NewInvalidByte(ch) }
            return nil, diag.NewUnrecognizedCharacter(r)
        }
        i++
    }

    emit(token.EOF, "")
    return out, nil
}

func isSkippable(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }
