package diag

import (
    "errors"
    "fmt"

    "vela-lang/impl/internal/value"
)

// RuntimeKind identifies an evaluation failure.
type RuntimeKind int

const (
    Parse RuntimeKind = iota
    TypeError
    UnknownOperator
    DivisionByZero
    UndefinedVariable
    DepthExceeded
)

func (k RuntimeKind) String() string {
    switch k {
    case Parse: return "ParserError"
    case TypeError: return "TypeError"
    case UnknownOperator: return "UnknownOperator"
    case DivisionByZero: return "DivisionByZero"
    case UndefinedVariable: return "UndefinedVariable"
    case DepthExceeded: return "DepthExceeded"
    }
    return "Unknown"
}

// RuntimeError is the single failure type returned by Interpret. Failures
// from earlier stages are carried in Cause with Kind set to Parse.
type RuntimeError struct {
    Kind     RuntimeKind
    Cause    *ParserError // Parse
    Message  string      // TypeError
    Operator string      // UnknownOperator
    Name     string      // UndefinedVariable
    Limit    int         // DepthExceeded
}

func (e *RuntimeError) Error() string {
    switch e.Kind {
    case Parse:
        if e.Cause == nil { return "Parsing error" }
        return e.Cause.Error()
    case TypeError:
        return "Type error: " + e.Message
    case UnknownOperator:
        return fmt.Sprintf("Unknown operator: '%s'", e.Operator)
    case DivisionByZero:
        return "Runtime error: division by zero"
    case UndefinedVariable:
        return fmt.Sprintf("Runtime error: undefined variable '%s'", e.Name)
    case DepthExceeded:
        return fmt.Sprintf("Runtime error: evaluation exceeds maximum depth of %d", e.Limit)
    }
    return "Runtime error"
}

func (e *RuntimeError) Unwrap() error {
    if e.Cause == nil { return nil }
    return e.Cause
}

// FromParser lifts a lexer or parser failure into a RuntimeError. Errors that
// are already RuntimeErrors pass through; anything else becomes a Custom
// parser failure.
func FromParser(err error) *RuntimeError {
    if err == nil { return nil }
    var rt *RuntimeError
    if errors.As(err, &rt) { return rt }
    var pe *ParserError
    if !errors.As(err, &pe) { pe = NewCustom("%v", err) }
    return &RuntimeError{Kind: Parse, Cause: pe}
}

func NewTypeError(format string, args ...interface{}) *RuntimeError {
    return &RuntimeError{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func NewUnknownOperator(op string) *RuntimeError {
    return &RuntimeError{Kind: UnknownOperator, Operator: op}
}

func NewDivisionByZero() *RuntimeError { return &RuntimeError{Kind: DivisionByZero} }

func NewUndefinedVariable(name string) *RuntimeError {
    return &RuntimeError{Kind: UndefinedVariable, Name: name}
}

func NewDepthExceeded(limit int) *RuntimeError {
    return &RuntimeError{Kind: DepthExceeded, Limit: limit}
}

// OperandError reports a non-number operand given to an arithmetic or
// comparison operator.
func OperandError(side, op string, comparison bool, got value.Value) *RuntimeError {
    if comparison {
        return NewTypeError("%s operand of comparison '%s' must be a number, got %s.", side, op, value.Format(got))
    }
    return NewTypeError("%s operand of '%s' must be a number, got %s.", side, op, value.Format(got))
}
