package evaluator

import (
    "errors"
    "strconv"

    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/parser"
    "vela-lang/impl/internal/value"
)

// DefaultMaxDepth bounds the recursion of a single evaluation. The left
// spine of an operator chain is folded in a loop and costs one level.
const DefaultMaxDepth = 10000

// Handler evaluates one node kind. Handlers recurse through ev.Eval so the
// depth guard sees every level.
type Handler func(ev *Evaluator, node parser.Stmt) (value.Value, error)

type Evaluator struct {
    handlers map[parser.NodeKind]Handler
    depth    int
    maxDepth int
}

type Option func(*Evaluator)

// WithMaxDepth sets the recursion limit; values below 1 keep the default.
func WithMaxDepth(n int) Option {
    return func(ev *Evaluator) { if n > 0 { ev.maxDepth = n } }
}

func New(opts ...Option) *Evaluator {
    ev := &Evaluator{maxDepth: DefaultMaxDepth, handlers: map[parser.NodeKind]Handler{
        parser.ProgramKind:        evalNestedProgram,
        parser.NumericLiteralKind: evalNumericLiteral,
        parser.IdentifierKind:     evalIdentifier,
        parser.BinaryExprKind:     evalBinaryExpr,
        parser.IfStmtKind:         evalIfStmt,
        parser.BlockStmtKind:      evalBlockStmt,
    }}
    for _, o := range opts { o(ev) }
    return ev
}

// Register installs or replaces the handler for a node kind. This is how
// bindings, loops and calls plug in without touching existing cases.
func (ev *Evaluator) Register(kind parser.NodeKind, h Handler) { ev.handlers[kind] = h }

// Evaluate runs a program and returns the value of its last top-level
// statement, or Null for an empty program. Errors are *diag.RuntimeError.
func (ev *Evaluator) Evaluate(prog *parser.Program) (value.Value, error) {
    if prog == nil { return nil, diag.NewTypeError("Program is missing.") }
    return ev.evalBody(prog.Body)
}

// Eval dispatches a single node.
func (ev *Evaluator) Eval(node parser.Stmt) (value.Value, error) {
    if node == nil { return nil, diag.NewTypeError("Cannot evaluate a missing node.") }
    ev.depth++
    defer func() { ev.depth-- }()
    if ev.depth > ev.maxDepth { return nil, diag.NewDepthExceeded(ev.maxDepth) }

    h, ok := ev.handlers[node.Kind()]
    if !ok { return nil, diag.NewTypeError("Unhandled AST node type: %s", node.Kind()) }
    return h(ev, node)
}

func (ev *Evaluator) evalBody(body []parser.Stmt) (value.Value, error) {
    var last value.Value = value.Null{}
    for _, st := range body {
        v, err := ev.Eval(st)
        if err != nil { return nil, err }
        last = v
    }
    return last, nil
}

func evalNestedProgram(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    return nil, diag.NewTypeError("Cannot evaluate Program node directly as a statement.")
}

func evalNumericLiteral(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    lit, ok := node.(*parser.NumericLiteral)
    if !ok || lit == nil { return nil, mismatched(node) }
    f, err := strconv.ParseFloat(lit.Value, 64)
    // Out-of-range numerals saturate to ±Inf or 0, like any float parse.
    if errors.Is(err, strconv.ErrRange) { err = nil }
    if err != nil { return nil, diag.NewTypeError("Failed to parse number '%s': %v", lit.Value, err) }
    return value.Number{V: f}, nil
}

func evalIdentifier(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    id, ok := node.(*parser.Identifier)
    if !ok || id == nil { return nil, mismatched(node) }
    return nil, diag.NewUndefinedVariable(id.Name)
}

func evalBlockStmt(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    b, ok := node.(*parser.BlockStmt)
    if !ok || b == nil { return nil, diag.NewTypeError("BlockStmt is missing its body.") }
    return ev.evalBody(b.Body)
}

func evalIfStmt(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    st, ok := node.(*parser.IfStmt)
    if !ok || st == nil { return nil, mismatched(node) }
    if st.Condition == nil { return nil, diag.NewTypeError("If statement missing condition.") }
    if st.Consequent == nil { return nil, diag.NewTypeError("If statement missing consequent block.") }

    cond, err := ev.Eval(st.Condition)
    if err != nil { return nil, err }
    truthy, err := isTruthy(cond)
    if err != nil { return nil, err }

    if truthy { return ev.Eval(st.Consequent) }
    if st.Alternate != nil { return ev.Eval(st.Alternate) }
    return value.Null{}, nil
}

func isTruthy(v value.Value) (bool, error) {
    switch x := v.(type) {
    case value.Boolean: return x.V, nil
    case value.Number: return x.V != 0, nil
    case value.Null: return false, nil
    default:
        return false, diag.NewTypeError("If condition must evaluate to a boolean or number, got %s.", value.Format(v))
    }
}

// mismatched reports a node whose concrete type disagrees with its kind,
// which only hand-built trees can produce.
func mismatched(node parser.Stmt) error {
    return diag.NewTypeError("Malformed %s node.", node.Kind())
}
