package codegen

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/tangzhangming/asmgen/internal/ast"
	"github.com/tangzhangming/asmgen/internal/errors"
	"github.com/tangzhangming/asmgen/internal/i18n"
)

// ============================================================================
// 语句
// ============================================================================

// scanAssignTargets 收集赋值目标，按首次出现顺序去重
func scanAssignTargets(body []*ast.Stmt) []string {
	return lo.Uniq(lo.FilterMap(body, func(s *ast.Stmt, _ int) (string, bool) {
		if s == nil || s.Kind != ast.StmtAssign {
			return "", false
		}
		return s.Name, true
	}))
}

// lowerBody 生成函数体
// 第一遍扫描赋值目标估计局部变量空间，第二遍逐条生成语句。
func (fg *funcGen) lowerBody(body []*ast.Stmt) error {
	targets := scanAssignTargets(body)
	fg.scanSize = len(targets) * SlotSize
	fg.log.Debug("scanned locals", zap.Strings("targets", targets), zap.Int("bytes", fg.scanSize))

	fg.asm.ReserveFrame()

	for _, s := range body {
		if s == nil {
			continue
		}
		if err := fg.lowerStatement(s); err != nil {
			return err
		}
	}

	if !fg.returned {
		fg.log.Debug("adding implicit return")
		fg.emitEpilogue()
	}
	return nil
}

func (fg *funcGen) lowerStatement(s *ast.Stmt) error {
	fg.returned = false

	switch s.Kind {
	case ast.StmtAssign:
		return fg.lowerAssign(s)
	case ast.StmtReturn:
		if err := fg.lowerReturn(s); err != nil {
			return err
		}
		fg.returned = true
	case ast.StmtNone:
		// 空语句
	default:
		fg.warn(errors.G0102, i18n.WarnUnsupportedStmt, s.Kind)
	}
	return nil
}

// lowerAssign 赋值：右值求值到累加器后存入变量的栈槽
func (fg *funcGen) lowerAssign(s *ast.Stmt) error {
	loc, err := fg.lower(s.Expr)
	if err != nil {
		return err
	}
	if !loc.IsAccumulator() {
		fg.asm.Mov(loc, AccumulatorLoc)
	}

	slot := fg.slotFor(s.Name)
	fg.asm.Mov(AccumulatorLoc, slot)
	return nil
}

// slotFor 返回变量的栈槽
// 已经有局部栈槽的变量复用原槽，否则分配新槽并更新绑定。
func (fg *funcGen) slotFor(name string) Location {
	if b, ok := fg.store.FindVar(name); ok {
		if b.Loc.IsLocalSlot() {
			return b.Loc
		}
		fg.dropBinding(b)
	}
	slot := fg.frame.AllocateSlot()
	fg.store.Upsert(name, slot, InvalidValue, false)
	fg.log.Debug("allocated variable", zap.String("var", name), zap.Int("offset", slot.Offset))
	return slot
}

// lowerReturn 返回：值放入累加器后生成尾声
func (fg *funcGen) lowerReturn(s *ast.Stmt) error {
	switch {
	case s.Expr == nil:
	case s.Expr.Kind == ast.ExprConstant:
		fg.loadImmediate(s.Expr.Value, Accumulator)
	default:
		loc, err := fg.lower(s.Expr)
		if err != nil {
			return err
		}
		if !loc.IsAccumulator() {
			fg.asm.Mov(loc, AccumulatorLoc)
		}
	}
	fg.emitEpilogue()
	return nil
}
