package codegen

// SlotSize 栈槽大小（字节）
const SlotSize = 8

// FrameCursor 栈槽分配游标
//
// 游标从 0 开始只减不增。偏移 0 留给保存的帧指针，所以第一次分配
// 先退到 -8；每次分配返回当前游标后再减 8。
type FrameCursor struct {
	offset int
}

// NewFrameCursor 创建游标
func NewFrameCursor() *FrameCursor {
	return &FrameCursor{}
}

// AllocateSlot 分配一个新的 8 字节栈槽
func (c *FrameCursor) AllocateSlot() Location {
	if c.offset == 0 {
		c.offset -= SlotSize
	}
	slot := c.offset
	c.offset -= SlotSize
	return FrameLoc(slot)
}

// Offset 返回下一次分配的偏移
func (c *FrameCursor) Offset() int {
	if c.offset == 0 {
		return -SlotSize
	}
	return c.offset
}

// Used 返回已分配的字节数
func (c *FrameCursor) Used() int {
	if c.offset == 0 {
		return 0
	}
	return -(c.offset + SlotSize)
}
