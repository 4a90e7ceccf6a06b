package codegen

import (
	"fmt"
)

// InvalidValue 非常量绑定的值字段
const InvalidValue int64 = -999

// ============================================================================
// 存储位置
// ============================================================================

// LocationKind 存储位置类型
type LocationKind int

const (
	LocNone      LocationKind = iota
	LocRegister               // 寄存器
	LocFrame                  // 相对 %rbp 的栈槽
	LocImmediate              // 立即数（只作为指令源操作数）
)

// Location 存储描述符
type Location struct {
	Kind   LocationKind
	Reg    Register
	Offset int   // LocFrame: 相对帧指针的偏移
	Value  int64 // LocImmediate
}

// RegLoc 寄存器位置
func RegLoc(r Register) Location {
	return Location{Kind: LocRegister, Reg: r}
}

// FrameLoc 栈槽位置
func FrameLoc(offset int) Location {
	return Location{Kind: LocFrame, Offset: offset}
}

// Imm 立即数
func Imm(v int64) Location {
	return Location{Kind: LocImmediate, Value: v}
}

// AccumulatorLoc 累加器位置
var AccumulatorLoc = RegLoc(Accumulator)

// IsAccumulator 是否为累加器
func (l Location) IsAccumulator() bool {
	return l.Kind == LocRegister && l.Reg == Accumulator
}

// IsLocalSlot 是否为帧指针下方的局部栈槽
func (l Location) IsLocalSlot() bool {
	return l.Kind == LocFrame && l.Offset < 0
}

// String 返回 AT&T 语法的操作数
func (l Location) String() string {
	switch l.Kind {
	case LocRegister:
		return l.Reg.String()
	case LocFrame:
		return fmt.Sprintf("%d(%%rbp)", l.Offset)
	case LocImmediate:
		return fmt.Sprintf("$%d", l.Value)
	default:
		return "<none>"
	}
}

// ============================================================================
// 存储表
// ============================================================================

// Binding 名字或常量到存储位置的绑定
type Binding struct {
	Name    string // 变量名，匿名常量为空
	IsConst bool
	Value   int64 // 常量值，变量为 InvalidValue
	Loc     Location
}

func (b *Binding) matches(name string, value int64) bool {
	if b.IsConst {
		return name == "" && b.Value == value
	}
	return name != "" && b.Name == name
}

// StorageTable 记录变量和常量当前的存储位置
//
// 新绑定追加在末尾，查找从末尾向前，因此后插入的绑定遮蔽先前的同名绑定。
// 常量按值匹配（查询时名字为空），变量按名字匹配。
type StorageTable struct {
	bindings []*Binding
}

// NewStorageTable 创建存储表
func NewStorageTable() *StorageTable {
	return &StorageTable{}
}

// Record 插入新绑定，不检查是否已存在
func (s *StorageTable) Record(name string, loc Location, value int64, isConst bool) *Binding {
	b := &Binding{Name: name, IsConst: isConst, Value: value, Loc: loc}
	s.bindings = append(s.bindings, b)
	return b
}

// Find 查找绑定。变量传名字，常量传空名字和值。
func (s *StorageTable) Find(name string, value int64) (*Binding, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if b := s.bindings[i]; b.matches(name, value) {
			return b, true
		}
	}
	return nil, false
}

// FindVar 按名字查找变量
func (s *StorageTable) FindVar(name string) (*Binding, bool) {
	return s.Find(name, InvalidValue)
}

// FindConst 按值查找常量
func (s *StorageTable) FindConst(value int64) (*Binding, bool) {
	return s.Find("", value)
}

// Upsert 存在则原地更新，不存在则插入
func (s *StorageTable) Upsert(name string, loc Location, value int64, isConst bool) *Binding {
	if b, ok := s.Find(name, value); ok {
		b.Loc = loc
		b.Value = value
		b.IsConst = isConst
		return b
	}
	return s.Record(name, loc, value, isConst)
}

// Len 返回绑定数量
func (s *StorageTable) Len() int {
	return len(s.bindings)
}

// Bindings 返回全部绑定，最近插入的在前
func (s *StorageTable) Bindings() []*Binding {
	out := make([]*Binding, 0, len(s.bindings))
	for i := len(s.bindings) - 1; i >= 0; i-- {
		out = append(out, s.bindings[i])
	}
	return out
}
