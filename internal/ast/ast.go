// Package ast 定义代码生成后端消费的抽象语法树
//
// 语法树由外部的词法/语法分析器产生，后端只读取，不做语法或语义校验。
package ast

import (
	"fmt"
	"strings"
)

// ============================================================================
// 顶层声明
// ============================================================================

// DeclKind 顶层声明类型
type DeclKind int

const (
	DeclNone DeclKind = iota // 未知声明
	DeclFunc                 // 函数声明
	DeclVar                  // 全局变量声明（后端忽略）
)

var declKindNames = map[DeclKind]string{
	DeclNone: "none",
	DeclFunc: "func",
	DeclVar:  "var",
}

func (k DeclKind) String() string {
	if name, ok := declKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Program 顶层声明序列
type Program struct {
	Decls []*Decl `json:"decls"`
}

// Functions 返回所有函数声明，保持原有顺序
func (p *Program) Functions() []*Decl {
	var fns []*Decl
	for _, d := range p.Decls {
		if d != nil && d.Kind == DeclFunc {
			fns = append(fns, d)
		}
	}
	return fns
}

// Arg 形式参数
type Arg struct {
	Name string `json:"name"`
}

// Decl 顶层声明
type Decl struct {
	Kind DeclKind `json:"kind"`
	Name string   `json:"name"`
	Args []*Arg   `json:"args,omitempty"` // 形参列表（仅函数）
	Body []*Stmt  `json:"body,omitempty"` // 语句列表（仅函数）
}

func (d *Decl) String() string {
	if d.Kind != DeclFunc {
		return fmt.Sprintf("%s %s", d.Kind, d.Name)
	}
	names := make([]string, len(d.Args))
	for i, a := range d.Args {
		names[i] = a.Name
	}
	return fmt.Sprintf("func %s(%s) { %d statements }", d.Name, strings.Join(names, ", "), len(d.Body))
}

// ============================================================================
// 语句
// ============================================================================

// StmtKind 语句类型
type StmtKind int

const (
	StmtNone   StmtKind = iota // 空语句
	StmtAssign                 // 赋值: name = expr
	StmtReturn                 // 返回: return expr
)

var stmtKindNames = map[StmtKind]string{
	StmtNone:   "none",
	StmtAssign: "assign",
	StmtReturn: "return",
}

func (k StmtKind) String() string {
	if name, ok := stmtKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Stmt 语句节点
type Stmt struct {
	Kind StmtKind `json:"kind"`
	Name string   `json:"name,omitempty"` // 赋值目标
	Expr *Expr    `json:"expr,omitempty"` // 右值或返回值
}

func (s *Stmt) String() string {
	switch s.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = %s;", s.Name, s.Expr)
	case StmtReturn:
		if s.Expr == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", s.Expr)
	default:
		return ";"
	}
}

// ============================================================================
// 表达式
// ============================================================================

// ExprKind 表达式类型
type ExprKind int

const (
	ExprNone      ExprKind = iota // 未设置
	ExprVariable                  // 变量引用
	ExprConstant                  // 整数常量
	ExprOperation                 // 运算（含函数调用）
)

var exprKindNames = map[ExprKind]string{
	ExprNone:      "none",
	ExprVariable:  "var",
	ExprConstant:  "const",
	ExprOperation: "op",
}

func (k ExprKind) String() string {
	if name, ok := exprKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// OpType 运算符
type OpType int

const (
	OpNone       OpType = iota
	OpCall              // 函数调用，Left 为被调函数名
	OpAdd               // +
	OpSubtract          // -
	OpMultiply          // *
	OpDivide            // /
	OpBitOr             // |
	OpBitAnd            // &
	OpBitXor            // ^
	OpShl               // <<
	OpShr               // >>
	OpNegate            // 一元 -
	OpBitNot            // 一元 ~
	OpLess              // <
	OpGreater           // >
	OpEqual             // ==
	OpNotEqual          // !=
	OpLogicalAnd        // &&
	OpLogicalOr         // ||
)

var opNames = map[OpType]string{
	OpNone:       "none",
	OpCall:       "call",
	OpAdd:        "add",
	OpSubtract:   "sub",
	OpMultiply:   "mul",
	OpDivide:     "div",
	OpBitOr:      "or",
	OpBitAnd:     "and",
	OpBitXor:     "xor",
	OpShl:        "shl",
	OpShr:        "shr",
	OpNegate:     "neg",
	OpBitNot:     "not",
	OpLess:       "lt",
	OpGreater:    "gt",
	OpEqual:      "eq",
	OpNotEqual:   "ne",
	OpLogicalAnd: "land",
	OpLogicalOr:  "lor",
}

var opSymbols = map[OpType]string{
	OpAdd:        "+",
	OpSubtract:   "-",
	OpMultiply:   "*",
	OpDivide:     "/",
	OpBitOr:      "|",
	OpBitAnd:     "&",
	OpBitXor:     "^",
	OpShl:        "<<",
	OpShr:        ">>",
	OpNegate:     "-",
	OpBitNot:     "~",
	OpLess:       "<",
	OpGreater:    ">",
	OpEqual:      "==",
	OpNotEqual:   "!=",
	OpLogicalAnd: "&&",
	OpLogicalOr:  "||",
}

func (op OpType) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// IsUnary 是否一元运算符
func (op OpType) IsUnary() bool {
	return op == OpNegate || op == OpBitNot
}

// Expr 表达式节点
type Expr struct {
	Kind  ExprKind `json:"kind"`
	Name  string   `json:"name,omitempty"`  // 变量名
	Value int64    `json:"value,omitempty"` // 常量值
	Op    OpType   `json:"op,omitempty"`
	Left  *Expr    `json:"left,omitempty"`
	Right *Expr    `json:"right,omitempty"`
	Args  []*Expr  `json:"args,omitempty"` // 调用实参
}

// Callee 返回调用表达式的被调函数名
func (e *Expr) Callee() string {
	if e.Op != OpCall || e.Left == nil {
		return ""
	}
	return e.Left.Name
}

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprVariable:
		return e.Name
	case ExprConstant:
		return fmt.Sprintf("%d", e.Value)
	case ExprOperation:
		if e.Op == OpCall {
			args := make([]string, len(e.Args))
			for i, a := range e.Args {
				args[i] = a.String()
			}
			return fmt.Sprintf("%s(%s)", e.Callee(), strings.Join(args, ", "))
		}
		sym, ok := opSymbols[e.Op]
		if !ok {
			sym = e.Op.String()
		}
		if e.Op.IsUnary() {
			return fmt.Sprintf("%s%s", sym, e.Left)
		}
		return fmt.Sprintf("(%s %s %s)", e.Left, sym, e.Right)
	default:
		return fmt.Sprintf("<%s>", e.Kind)
	}
}
