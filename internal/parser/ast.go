package parser

import "encoding/json"

// NodeKind tags each AST variant.
type NodeKind int

const (
    ProgramKind NodeKind = iota
    NumericLiteralKind
    BinaryExprKind
    IdentifierKind
    BlockStmtKind
    IfStmtKind
    WhileStmtKind

    // Reserved for the binding and function vocabulary; no node carries these yet.
    UntilStmtKind
    UnlessStmtKind
    AssignmentKind
    ReturnStmtKind
    FunctionDeclarationKind
    CallExpressionKind
    VariableDeclarationKind
    FunctionExpressionKind
)

var nodeKindNames = [...]string{
    ProgramKind:             "Program",
    NumericLiteralKind:      "NumericLiteral",
    BinaryExprKind:          "BinaryExpr",
    IdentifierKind:          "Identifier",
    BlockStmtKind:           "BlockStmt",
    IfStmtKind:              "IfStmt",
    WhileStmtKind:           "WhileStmt",
    UntilStmtKind:           "UntilStmt",
    UnlessStmtKind:          "UnlessStmt",
    AssignmentKind:          "Assignment",
    ReturnStmtKind:          "ReturnStmt",
    FunctionDeclarationKind: "FunctionDeclaration",
    CallExpressionKind:      "CallExpression",
    VariableDeclarationKind: "VariableDeclaration",
    FunctionExpressionKind:  "FunctionExpression",
}

func (k NodeKind) String() string {
    if k >= 0 && int(k) < len(nodeKindNames) { return nodeKindNames[k] }
    return "Unknown"
}

// Stmt is any node that can appear in a statement list. Expressions are
// statements too.
type Stmt interface {
    Kind() NodeKind
    isStmt()
}

// Program is the root of a parse.
type Program struct {
    Body []Stmt `json:"body"`
}

type NumericLiteral struct {
    Value string `json:"value"`
}

type Identifier struct {
    Name string `json:"name"`
}

type BinaryExpr struct {
    Left     Stmt   `json:"left"`
    Operator string `json:"operator"`
    Right    Stmt   `json:"right"`
}

type BlockStmt struct {
    Body []Stmt `json:"body"`
}

// IfStmt's Alternate is nil, a *BlockStmt or a chained *IfStmt.
type IfStmt struct {
    Condition  Stmt       `json:"condition"`
    Consequent *BlockStmt `json:"consequent"`
    Alternate  Stmt       `json:"alternate,omitempty"`
}

type WhileStmt struct {
    Condition  Stmt       `json:"condition"`
    Consequent *BlockStmt `json:"consequent"`
}

func (*Program) Kind() NodeKind        { return ProgramKind }
func (*NumericLiteral) Kind() NodeKind { return NumericLiteralKind }
func (*Identifier) Kind() NodeKind     { return IdentifierKind }
func (*BinaryExpr) Kind() NodeKind     { return BinaryExprKind }
func (*BlockStmt) Kind() NodeKind      { return BlockStmtKind }
func (*IfStmt) Kind() NodeKind         { return IfStmtKind }
func (*WhileStmt) Kind() NodeKind      { return WhileStmtKind }

func (*Program) isStmt()        {}
func (*NumericLiteral) isStmt() {}
func (*Identifier) isStmt()     {}
func (*BinaryExpr) isStmt()     {}
func (*BlockStmt) isStmt()      {}
func (*IfStmt) isStmt()         {}
func (*WhileStmt) isStmt()      {}

// JSON output carries a "type" discriminator ahead of the node fields.
func tagged(kind NodeKind, node interface{}) ([]byte, error) {
    fields, err := json.Marshal(node)
    if err != nil { return nil, err }
    head, _ := json.Marshal(kind.String())
    out := append([]byte(`{"type":`), head...)
    if len(fields) > 2 {
        out = append(out, ',')
        out = append(out, fields[1:]...)
    } else {
        out = append(out, '}')
    }
    return out, nil
}

func (n *Program) MarshalJSON() ([]byte, error) {
    type plain Program
    return tagged(n.Kind(), (*plain)(n))
}

func (n *NumericLiteral) MarshalJSON() ([]byte, error) {
    type plain NumericLiteral
    return tagged(n.Kind(), (*plain)(n))
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
    type plain Identifier
    return tagged(n.Kind(), (*plain)(n))
}

func (n *BinaryExpr) MarshalJSON() ([]byte, error) {
    type plain BinaryExpr
    return tagged(n.Kind(), (*plain)(n))
}

func (n *BlockStmt) MarshalJSON() ([]byte, error) {
    type plain BlockStmt
    return tagged(n.Kind(), (*plain)(n))
}

func (n *IfStmt) MarshalJSON() ([]byte, error) {
    type plain IfStmt
    return tagged(n.Kind(), (*plain)(n))
}

func (n *WhileStmt) MarshalJSON() ([]byte, error) {
    type plain WhileStmt
    return tagged(n.Kind(), (*plain)(n))
}
