// Package interpreter wires the lexer, parser and evaluator behind a single
// entry point.
package interpreter

import (
    "time"

    "github.com/inconshreveable/log15"

    "vela-lang/impl/internal/config"
    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/evaluator"
    "vela-lang/impl/internal/lexer"
    "vela-lang/impl/internal/parser"
    "vela-lang/impl/internal/token"
    "vela-lang/impl/internal/value"
)

// Interpreter holds configuration only; each call builds its own tokens, tree
// and evaluator, so one Interpreter may serve concurrent callers.
type Interpreter struct {
    cfg config.Interpreter
    log log15.Logger
}

// New returns an interpreter. A nil logger discards output.
func New(cfg config.Interpreter, logger log15.Logger) *Interpreter {
    if logger == nil {
        logger = log15.New()
        logger.SetHandler(log15.DiscardHandler())
    }
    return &Interpreter{cfg: cfg, log: logger.New("module", "interpreter")}
}

var std = New(config.Defaults.Interpreter, nil)

// Interpret runs source with the default configuration.
func Interpret(source string) (value.Value, error) { return std.Interpret(source) }

// Tokenize lexes source. Failures are *diag.RuntimeError wrapping the lexical error.
func (ip *Interpreter) Tokenize(source string) ([]token.Token, error) {
    toks, err := lexer.Lex(source)
    if err != nil {
        ip.log.Debug("Lexing failed", "err", err)
        return nil, diag.FromParser(err)
    }
    ip.log.Debug("Tokenized source", "bytes", len(source), "tokens", len(toks))
    return toks, nil
}

// Parse lexes and parses source into a program.
func (ip *Interpreter) Parse(source string) (*parser.Program, error) {
    toks, err := ip.Tokenize(source)
    if err != nil { return nil, err }
    p := parser.New(toks,
        parser.WithMaxDepth(ip.cfg.MaxDepth),
        parser.WithGroupComparisons(ip.cfg.GroupComparisons))
    prog, err := p.ProduceAST()
    if err != nil {
        ip.log.Debug("Parsing failed", "err", err)
        return nil, diag.FromParser(err)
    }
    ip.log.Debug("Parsed program", "statements", len(prog.Body))
    return prog, nil
}

// Interpret evaluates source and returns the value of its last statement.
// Every failure is a *diag.RuntimeError.
func (ip *Interpreter) Interpret(source string) (value.Value, error) {
    start := time.Now()
    prog, err := ip.Parse(source)
    if err != nil { return nil, err }

    v, err := evaluator.New(evaluator.WithMaxDepth(ip.cfg.MaxEvalDepth)).Evaluate(prog)
    if err != nil {
        ip.log.Debug("Evaluation failed", "err", err, "elapsed", time.Since(start))
        return nil, err
    }
    ip.log.Debug("Evaluated program", "result", value.Format(v), "elapsed", time.Since(start))
    return v, nil
}
