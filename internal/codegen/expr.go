package codegen

import (
	"math"

	"go.uber.org/zap"

	"github.com/tangzhangming/asmgen/internal/ast"
	"github.com/tangzhangming/asmgen/internal/errors"
	"github.com/tangzhangming/asmgen/internal/i18n"
)

var arithMnemonics = map[ast.OpType]string{
	ast.OpAdd:      "addq",
	ast.OpSubtract: "subq",
	ast.OpMultiply: "imulq",
	ast.OpBitOr:    "orq",
	ast.OpBitAnd:   "andq",
	ast.OpBitXor:   "xorq",
}

var shiftMnemonics = map[ast.OpType]string{
	ast.OpShl: "shlq",
	ast.OpShr: "sarq",
}

var unaryMnemonics = map[ast.OpType]string{
	ast.OpNegate: "negq",
	ast.OpBitNot: "notq",
}

// ============================================================================
// 表达式
// ============================================================================

// lower 生成表达式求值代码，返回结果所在位置
// 变量和运算的结果在累加器中；常量返回它的栈槽。
func (fg *funcGen) lower(e *ast.Expr) (Location, error) {
	if e == nil {
		fg.warn(errors.G0101, i18n.WarnUnsupportedExpr, ast.ExprNone)
		return AccumulatorLoc, nil
	}

	switch e.Kind {
	case ast.ExprVariable:
		b, ok := fg.store.FindVar(e.Name)
		if !ok {
			return Location{}, fg.unbound(e.Name)
		}
		fg.asm.Mov(b.Loc, AccumulatorLoc)
		return AccumulatorLoc, nil

	case ast.ExprConstant:
		return fg.lowerConstant(e.Value), nil

	case ast.ExprOperation:
		return fg.lowerOperation(e)

	default:
		fg.warn(errors.G0101, i18n.WarnUnsupportedExpr, e.Kind)
		return AccumulatorLoc, nil
	}
}

// lowerConstant 把常量存入栈槽，同一个值在函数内只存一次
func (fg *funcGen) lowerConstant(value int64) Location {
	if b, ok := fg.store.FindConst(value); ok {
		return b.Loc
	}
	slot := fg.frame.AllocateSlot()
	if fitsImm32(value) {
		fg.asm.Mov(Imm(value), slot)
	} else {
		fg.loadImmediate(value, Accumulator)
		fg.asm.Mov(AccumulatorLoc, slot)
	}
	fg.store.Record("", slot, value, true)
	fg.log.Debug("stored constant", zap.Int64("value", value), zap.Int("offset", slot.Offset))
	return slot
}

// loadImmediate 把立即数装入寄存器
func (fg *funcGen) loadImmediate(value int64, r Register) {
	if fitsImm32(value) {
		fg.asm.Mov(Imm(value), RegLoc(r))
		return
	}
	fg.asm.Instr("movabsq", Imm(value).String(), r.String())
}

func fitsImm32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// resolveOperand 返回操作数所在位置
// 已绑定的变量和常量直接使用存储表中的位置；其余先求值，
// 结果在累加器时移到寄存器或栈槽。返回指针以便溢出时同步更新。
func (fg *funcGen) resolveOperand(e *ast.Expr) (*Location, error) {
	if e != nil {
		switch e.Kind {
		case ast.ExprVariable:
			b, ok := fg.store.FindVar(e.Name)
			if !ok {
				return nil, fg.unbound(e.Name)
			}
			return &b.Loc, nil
		case ast.ExprConstant:
			if b, ok := fg.store.FindConst(e.Value); ok {
				return &b.Loc, nil
			}
		}
	}

	loc, err := fg.lower(e)
	if err != nil {
		return nil, err
	}
	if loc.IsAccumulator() {
		return fg.materialize(), nil
	}
	return &loc, nil
}

// lowerOperation 生成运算代码，结果在累加器
func (fg *funcGen) lowerOperation(e *ast.Expr) (Location, error) {
	switch {
	case e.Op == ast.OpCall:
		return fg.lowerCall(e)
	case unaryMnemonics[e.Op] != "":
		return fg.lowerUnary(e)
	case arithMnemonics[e.Op] != "", shiftMnemonics[e.Op] != "", e.Op == ast.OpDivide:
		return fg.lowerBinary(e)
	default:
		fg.warn(errors.G0100, i18n.WarnUnhandledOp, e.Op)
		return AccumulatorLoc, nil
	}
}

// lowerUnary 一元运算：操作数装入累加器后原地运算
func (fg *funcGen) lowerUnary(e *ast.Expr) (Location, error) {
	loc, err := fg.lower(e.Left)
	if err != nil {
		return Location{}, err
	}
	if !loc.IsAccumulator() {
		fg.asm.Mov(loc, AccumulatorLoc)
	}
	fg.asm.Unary(unaryMnemonics[e.Op], Accumulator)
	return AccumulatorLoc, nil
}

// lowerBinary 二元运算：左操作数装入累加器，右操作数作为第二个源
func (fg *funcGen) lowerBinary(e *ast.Expr) (Location, error) {
	left, err := fg.resolveOperand(e.Left)
	if err != nil {
		return Location{}, err
	}
	right, err := fg.resolveOperand(e.Right)
	if err != nil {
		fg.releaseTemp(left)
		return Location{}, err
	}
	defer func() {
		fg.releaseTemp(left)
		fg.releaseTemp(right)
	}()

	switch {
	case e.Op == ast.OpDivide:
		// cqto 会覆盖 %rdx
		fg.spill(RDX)
		fg.asm.Mov(*left, AccumulatorLoc)
		fg.asm.Cqto()
		fg.asm.Idiv(*right)

	case shiftMnemonics[e.Op] != "":
		// 移位计数必须在 %cl
		fg.spill(RCX)
		fg.asm.Mov(*left, AccumulatorLoc)
		fg.asm.Mov(*right, RegLoc(RCX))
		fg.asm.Shift(shiftMnemonics[e.Op], Accumulator)

	default:
		fg.asm.Mov(*left, AccumulatorLoc)
		fg.asm.Arith(arithMnemonics[e.Op], *right, AccumulatorLoc)
	}
	return AccumulatorLoc, nil
}

// lowerCall 函数调用，返回值按约定在累加器
func (fg *funcGen) lowerCall(e *ast.Expr) (Location, error) {
	callee := e.Callee()
	if callee == "" {
		fg.warn(errors.G0101, i18n.WarnUnsupportedExpr, e.Op)
		return AccumulatorLoc, nil
	}

	args := make([]*Location, 0, len(e.Args))
	defer func() {
		for _, a := range args {
			fg.releaseTemp(a)
		}
	}()

	for _, arg := range e.Args {
		loc, err := fg.resolveOperand(arg)
		if err != nil {
			return Location{}, err
		}
		args = append(args, loc)
	}

	fg.spillCallerSaved()
	n := fg.lowerOutgoingArguments(args)
	fg.asm.Call(callee)
	fg.cleanupOutgoingArguments(n)

	fg.log.Debug("lowered call", zap.String("callee", callee), zap.Int("args", n))
	return AccumulatorLoc, nil
}
