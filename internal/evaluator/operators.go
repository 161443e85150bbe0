package evaluator

import (
    "math"

    "vela-lang/impl/internal/diag"
    "vela-lang/impl/internal/parser"
    "vela-lang/impl/internal/value"
)

func evalBinaryExpr(ev *Evaluator, node parser.Stmt) (value.Value, error) {
    ex, ok := node.(*parser.BinaryExpr)
    if !ok || ex == nil { return nil, mismatched(node) }

    // Collect the left spine so "1 + 2 + ... + n" folds iteratively.
    // Operands are checked outermost first, as plain recursion would.
    var spine []*parser.BinaryExpr
    for cur := ex; ; {
        if err := checkOperands(cur); err != nil { return nil, err }
        spine = append(spine, cur)
        next, ok := cur.Left.(*parser.BinaryExpr)
        if !ok || next == nil { break }
        cur = next
    }

    acc, err := ev.Eval(spine[len(spine)-1].Left)
    if err != nil { return nil, err }
    for i := len(spine) - 1; i >= 0; i-- {
        r, err := ev.Eval(spine[i].Right)
        if err != nil { return nil, err }
        if acc, err = Apply(spine[i].Operator, acc, r); err != nil { return nil, err }
    }
    return acc, nil
}

func checkOperands(ex *parser.BinaryExpr) error {
    if ex.Left == nil { return diag.NewTypeError("Binary expression missing left operand.") }
    if ex.Right == nil { return diag.NewTypeError("Binary expression missing right operand.") }
    if ex.Operator == "" { return diag.NewTypeError("Binary expression missing operator.") }
    return nil
}

// Apply evaluates a binary operator over two values. The operator is checked
// here rather than trusted from the parser.
func Apply(op string, l, r value.Value) (value.Value, error) {
    switch op {
    case "*", "/", "-", "+", "%":
        x, y, err := numbers(op, l, r, false)
        if err != nil { return nil, err }
        switch op {
        case "*": return value.Number{V: x * y}, nil
        case "/":
            if y == 0 { return nil, diag.NewDivisionByZero() }
            return value.Number{V: x / y}, nil
        case "-": return value.Number{V: x - y}, nil
        case "+": return value.Number{V: x + y}, nil
        default: return value.Number{V: math.Mod(x, y)}, nil
        }
    case "==", "!=", "<", "<=", ">", ">=":
        x, y, err := numbers(op, l, r, true)
        if err != nil { return nil, err }
        switch op {
        case "==": return value.Boolean{V: x == y}, nil
        case "!=": return value.Boolean{V: x != y}, nil
        case "<": return value.Boolean{V: x < y}, nil
        case "<=": return value.Boolean{V: x <= y}, nil
        case ">": return value.Boolean{V: x > y}, nil
        default: return value.Boolean{V: x >= y}, nil
        }
    default:
        return nil, diag.NewUnknownOperator(op)
    }
}

func numbers(op string, l, r value.Value, comparison bool) (float64, float64, error) {
    x, ok := l.(value.Number)
    if !ok { return 0, 0, diag.OperandError("Left", op, comparison, l) }
    y, ok := r.(value.Number)
    if !ok { return 0, 0, diag.OperandError("Right", op, comparison, r) }
    return x.V, y.V, nil
}
