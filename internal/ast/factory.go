package ast

// ============================================================================
// AST 节点工厂函数
// ============================================================================
//
// 工厂函数主要给测试和内嵌调用方使用，省去手写结构体字面量。
//
//   fn := Func("g", []string{"a", "b"},
//       Assign("x", Binary(OpAdd, Var("a"), Var("b"))),
//       Return(Var("x")),
//   )
//
// ============================================================================

// Var 创建变量引用
func Var(name string) *Expr {
	return &Expr{Kind: ExprVariable, Name: name}
}

// Const 创建整数常量
func Const(value int64) *Expr {
	return &Expr{Kind: ExprConstant, Value: value}
}

// Binary 创建二元运算
func Binary(op OpType, left, right *Expr) *Expr {
	return &Expr{Kind: ExprOperation, Op: op, Left: left, Right: right}
}

// Unary 创建一元运算，操作数放在 Left
func Unary(op OpType, operand *Expr) *Expr {
	return &Expr{Kind: ExprOperation, Op: op, Left: operand}
}

// Call 创建函数调用
func Call(callee string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprOperation, Op: OpCall, Left: Var(callee), Args: args}
}

// Assign 创建赋值语句
func Assign(name string, value *Expr) *Stmt {
	return &Stmt{Kind: StmtAssign, Name: name, Expr: value}
}

// Return 创建返回语句，value 可以为 nil
func Return(value *Expr) *Stmt {
	return &Stmt{Kind: StmtReturn, Expr: value}
}

// Empty 创建空语句
func Empty() *Stmt {
	return &Stmt{Kind: StmtNone}
}

// Func 创建函数声明
func Func(name string, args []string, body ...*Stmt) *Decl {
	d := &Decl{Kind: DeclFunc, Name: name, Body: body}
	for _, a := range args {
		d.Args = append(d.Args, &Arg{Name: a})
	}
	return d
}

// GlobalVar 创建全局变量声明
func GlobalVar(name string) *Decl {
	return &Decl{Kind: DeclVar, Name: name}
}

// NewProgram 创建程序
func NewProgram(decls ...*Decl) *Program {
	return &Program{Decls: decls}
}
