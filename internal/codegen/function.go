package codegen

import (
	"go.uber.org/zap"

	"github.com/tangzhangming/asmgen/internal/ast"
)

// ============================================================================
// 函数序言和尾声
// ============================================================================

// emitPrologue 生成函数序言
//
//	.globl name
//	name:
//	pushq %rbp
//	movq %rsp, %rbp
func (fg *funcGen) emitPrologue() {
	fg.asm.Directive(".globl %s", fg.decl.Name)
	fg.asm.Label(fg.decl.Name)
	fg.asm.Push(RegLoc(RBP))
	fg.asm.Mov(RegLoc(RSP), RegLoc(RBP))
}

// emitEpilogue 生成函数尾声
// 释放的字节数和序言中预留的一致，输出时才确定。
func (fg *funcGen) emitEpilogue() {
	fg.asm.ReleaseFrame()
	fg.asm.Pop(RBP)
	fg.asm.Ret()
}

// ============================================================================
// 参数传递
// ============================================================================

// bindIncomingArguments 记录形参所在位置
// 参数在入口时已经在寄存器或调用者的栈上，这里不生成指令。
func (fg *funcGen) bindIncomingArguments(args []*ast.Arg) {
	for i, arg := range args {
		loc := fg.conv.IncomingArgLocation(i)
		b := fg.store.Record(arg.Name, loc, InvalidValue, false)
		if loc.Kind == LocRegister {
			fg.regs.Reserve(loc.Reg)
			fg.holders[loc.Reg] = holder{loc: &b.Loc}
		}
		fg.log.Debug("bound argument", zap.String("arg", arg.Name), zap.Int("index", i), zap.Stringer("loc", loc))
	}
}

// lowerOutgoingArguments 把实参放到调用约定要求的位置，返回实参个数
// 栈上参数逆序压栈，被调用者在 16(%rbp) 处看到第 7 个参数。
func (fg *funcGen) lowerOutgoingArguments(args []*Location) int {
	n := len(args)
	for i := n - 1; i >= fg.conv.NumRegArgs(); i-- {
		fg.asm.Push(*args[i])
	}
	for i := 0; i < n && i < fg.conv.NumRegArgs(); i++ {
		dst := RegLoc(fg.conv.ArgRegs[i])
		if *args[i] != dst {
			fg.asm.Mov(*args[i], dst)
		}
	}
	return n
}

// cleanupOutgoingArguments 调用返回后弹出栈上参数
func (fg *funcGen) cleanupOutgoingArguments(n int) {
	if bytes := fg.conv.StackArgBytes(n); bytes > 0 {
		fg.asm.AddRSP(bytes, "Restore stack")
	}
}

// ============================================================================
// 寄存器驻留
// ============================================================================

// spill 把寄存器中的值移到新栈槽，并更新持有者的位置
func (fg *funcGen) spill(r Register) {
	h, ok := fg.holders[r]
	if !ok {
		return
	}
	slot := fg.frame.AllocateSlot()
	fg.asm.MovComment("spill "+r.String(), RegLoc(r), slot)
	*h.loc = slot
	delete(fg.holders, r)
	fg.regs.Release(r)
	fg.log.Debug("spilled register", zap.Stringer("reg", r), zap.Int("offset", slot.Offset))
}

// spillCallerSaved 调用前溢出所有调用者保存的寄存器
func (fg *funcGen) spillCallerSaved() {
	for _, r := range fg.conv.CallerSaved {
		fg.spill(r)
	}
}

// materialize 把累加器中的中间结果移出，避免被下一次求值覆盖
// 优先放进空闲寄存器，没有时放进新栈槽。
func (fg *funcGen) materialize() *Location {
	if fg.g.opts.UseRegisters {
		if r, ok := fg.regs.Claim(true); ok {
			if fg.conv.IsCalleeSaved(r) {
				fg.saveCallee(r)
			}
			loc := new(Location)
			*loc = RegLoc(r)
			fg.asm.Mov(AccumulatorLoc, *loc)
			fg.holders[r] = holder{loc: loc, temp: true}
			return loc
		}
		fg.log.Debug("no register available, using frame slot")
	}
	slot := fg.frame.AllocateSlot()
	fg.asm.Mov(AccumulatorLoc, slot)
	return &slot
}

// releaseTemp 释放中间结果占用的寄存器
func (fg *funcGen) releaseTemp(loc *Location) {
	if loc == nil || loc.Kind != LocRegister {
		return
	}
	if h, ok := fg.holders[loc.Reg]; ok && h.temp && h.loc == loc {
		delete(fg.holders, loc.Reg)
		fg.regs.Release(loc.Reg)
	}
}

// dropBinding 变量离开寄存器时释放该寄存器
func (fg *funcGen) dropBinding(b *Binding) {
	if b.Loc.Kind != LocRegister {
		return
	}
	if h, ok := fg.holders[b.Loc.Reg]; ok && h.loc == &b.Loc {
		delete(fg.holders, b.Loc.Reg)
		fg.regs.Release(b.Loc.Reg)
	}
}

// saveCallee 使用被调用者保存的寄存器前，为它分配保存槽
func (fg *funcGen) saveCallee(r Register) {
	for _, s := range fg.calleeSaves {
		if s.Reg == r {
			return
		}
	}
	slot := fg.frame.AllocateSlot()
	fg.calleeSaves = append(fg.calleeSaves, CalleeSave{Reg: r, Slot: slot})
	fg.log.Debug("saving callee-saved register", zap.Stringer("reg", r), zap.Int("offset", slot.Offset))
}
