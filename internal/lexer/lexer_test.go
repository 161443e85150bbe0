package lexer_test

import (
    "errors"
    "strings"
    "testing"
    "unicode/utf8"

    fuzz "github.com/google/gofuzz"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/lexer"
    "vela-lang/impl/internal/token"
)

type tokenCase struct {
    kind token.Kind
    lit  string
}

// runLex lexes input and checks the produced tokens (excluding the trailing EOF).
func runLex(t *testing.T, name, input string, want []tokenCase) {
    t.Helper()
    t.Run(name, func(t *testing.T) {
        toks, err := lexer.Lex(input)
        require.NoError(t, err)
        require.NotEmpty(t, toks)
        last := toks[len(toks)-1]
        assert.Equal(t, token.EOF, last.Kind, "last token")

        body := toks[:len(toks)-1]
        got := make([]tokenCase, len(body))
        for i, tok := range body { got[i] = tokenCase{tok.Kind, tok.Value} }
        if want == nil { want = []tokenCase{} }
        assert.Equal(t, want, got)
    })
}

func TestSingleCharTokens(t *testing.T) {
    runLex(t, "binary", "* / - + %", []tokenCase{
        {token.Binary, "*"}, {token.Binary, "/"}, {token.Binary, "-"}, {token.Binary, "+"}, {token.Binary, "%"},
    })
    runLex(t, "punctuation", "( ) { } . ;", []tokenCase{
        {token.OpenParen, "("}, {token.CloseParen, ")"}, {token.OpenBrace, "{"},
        {token.CloseBrace, "}"}, {token.Dot, "."}, {token.Semicolon, ";"},
    })
}

func TestComparisonTokens(t *testing.T) {
    runLex(t, "all", "= == != < <= > >=", []tokenCase{
        {token.Equals, "="}, {token.EqualsEquals, "=="}, {token.NotEquals, "!="},
        {token.LessThan, "<"}, {token.LessThanEquals, "<="},
        {token.GreaterThan, ">"}, {token.GreaterThanEquals, ">="},
    })
    runLex(t, "unspaced", "1<=2==3", []tokenCase{
        {token.Number, "1"}, {token.LessThanEquals, "<="}, {token.Number, "2"},
        {token.EqualsEquals, "=="}, {token.Number, "3"},
    })
    runLex(t, "triple equals", "===", []tokenCase{{token.EqualsEquals, "=="}, {token.Equals, "="}})
}

func TestNumbers(t *testing.T) {
    runLex(t, "integer", "42", []tokenCase{{token.Number, "42"}})
    runLex(t, "decimal", "3.25", []tokenCase{{token.Number, "3.25"}})
    runLex(t, "trailing dot", "7.", []tokenCase{{token.Number, "7"}, {token.Dot, "."}})
    runLex(t, "two dots", "1.2.3", []tokenCase{{token.Number, "1.2"}, {token.Dot, "."}, {token.Number, "3"}})
    runLex(t, "leading dot", ".5", []tokenCase{{token.Dot, "."}, {token.Number, "5"}})
    runLex(t, "no exponent", "1e5", []tokenCase{{token.Number, "1"}, {token.Identifier, "e5"}})
}

func TestIdentifiersAndKeywords(t *testing.T) {
    runLex(t, "identifier", "abc1 Z", []tokenCase{{token.Identifier, "abc1"}, {token.Identifier, "Z"}})
    runLex(t, "keywords", "if else until unless while work interop return break continue def function async import",
        []tokenCase{
            {token.If, "if"}, {token.Else, "else"}, {token.Until, "until"}, {token.Unless, "unless"},
            {token.While, "while"}, {token.Work, "work"}, {token.Interop, "interop"},
            {token.Return, "return"}, {token.Break, "break"}, {token.Continue, "continue"},
            {token.Def, "def"}, {token.Function, "function"}, {token.Async, "async"}, {token.Import, "import"},
        })
    runLex(t, "keyword prefix", "ifx whilex", []tokenCase{{token.Identifier, "ifx"}, {token.Identifier, "whilex"}})
}

func TestStrings(t *testing.T) {
    runLex(t, "simple", `"hello world"`, []tokenCase{{token.String, "hello world"}})
    runLex(t, "empty", `""`, []tokenCase{{token.String, ""}})
    runLex(t, "adjacent", `"a""b"`, []tokenCase{{token.String, "a"}, {token.String, "b"}})
}

func TestWhitespace(t *testing.T) {
    runLex(t, "empty", "", nil)
    runLex(t, "only whitespace", " \t\r\n ", nil)
    runLex(t, "mixed", "\n1\t+\r\n2 ", []tokenCase{{token.Number, "1"}, {token.Binary, "+"}, {token.Number, "2"}})

    long := strings.Repeat(" \n\t", 1<<20) + "1"
    toks, err := lexer.Lex(long)
    require.NoError(t, err)
    require.Len(t, toks, 2)
    assert.Equal(t, "1", toks[0].Value)
}

func TestLexErrors(t *testing.T) {
    cases := []struct {
        name  string
        input string
        kind  diag.ParseKind
        char  rune
    }{
        {"bang", "!", diag.UnrecognizedCharacter, '!'},
        {"bang space", "1 ! = 2", diag.UnrecognizedCharacter, '!'},
        {"at", "1 @ 2", diag.UnrecognizedCharacter, '@'},
        {"comma", "1, 2", diag.UnrecognizedCharacter, ','},
        {"underscore", "_x", diag.UnrecognizedCharacter, '_'},
        {"unicode", "λ", diag.UnrecognizedCharacter, 'λ'},
        {"replacement char", "\uFFFD", diag.UnrecognizedCharacter, '\uFFFD'},
        {"unterminated", `"abc`, diag.UnterminatedString, 0},
        {"unterminated after tokens", `1 + "`, diag.UnterminatedString, 0},
    }
    for _, c := range cases {
        t.Run(c.name, func(t *testing.T) {
            toks, err := lexer.Lex(c.input)
            assert.Nil(t, toks)
            var pe *diag.ParserError
            require.True(t, errors.As(err, &pe), "error %v", err)
            assert.Equal(t, c.kind, pe.Kind)
            assert.Equal(t, c.char, pe.Char)
        })
    }
}

func TestLexInvalidUTF8(t *testing.T) {
    for _, src := range []string{"\xff", "1 + \xc3", "\x80abc"} {
        _, err := lexer.Lex(src)
        var pe *diag.ParserError
        require.True(t, errors.As(err, &pe), "error %v", err)
        assert.Equal(t, diag.UnrecognizedCharacter, pe.Kind)
        assert.Equal(t, utf8.RuneError, pe.Char)
        assert.NotZero(t, pe.Byte)
        assert.Contains(t, pe.Error(), "unrecognized byte 0x")
    }

    _, err := lexer.Lex("1 \xfe")
    assert.EqualError(t, err, "Parsing error: unrecognized byte 0xfe")
}

// TestLexTotal feeds random sequences drawn from the accepted alphabet and
// checks that lexing never fails and always ends with EOF.
func TestLexTotal(t *testing.T) {
    const alphabet = "0123456789abcXYZ*/-+%(){}.;=<> \t\r\n"
    pieces := []string{"==", "!=", "<=", ">=", `"str"`, "if", "else", "while", "1.5"}

    f := fuzz.NewWithSeed(7).NilChance(0).Funcs(func(s *string, c fuzz.Continue) {
        var b strings.Builder
        for n := c.Intn(64); n > 0; n-- {
            if c.Intn(4) == 0 {
                b.WriteString(pieces[c.Intn(len(pieces))])
                continue
            }
            b.WriteByte(alphabet[c.Intn(len(alphabet))])
        }
        *s = b.String()
    })
    for i := 0; i < 500; i++ {
        var src string
        f.Fuzz(&src)
        toks, err := lexer.Lex(src)
        require.NoError(t, err, "source %q", src)
        require.NotEmpty(t, toks)
        assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
        for _, tok := range toks[:len(toks)-1] {
            assert.NotEqual(t, token.EOF, tok.Kind)
        }
    }
}
