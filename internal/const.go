package internal

import "reflect"

// ConstVar never changes and rejects every write.
type ConstVar struct {
	cell Cell
}

func NewConstVar(value any, typ reflect.Type) *ConstVar {
	return &ConstVar{cell: NewCell(value, typ)}
}

func (c *ConstVar) sealed() {}

func (c *ConstVar) Kind() Kind                    { return KindConst }
func (c *ConstVar) ValueType() reflect.Type       { return c.cell.Type() }
func (c *ConstVar) Get() any                      { return c.cell.Get() }
func (c *ConstVar) Set(any) bool                  { return deny() }
func (c *ConstVar) Modify(func(*ModifyCtx)) bool  { return deny() }
func (c *ConstVar) Update() bool                  { return deny() }
func (c *ConstVar) Capabilities() Capability      { return 0 }
func (c *ConstVar) Hook(HookFn) *HookHandle       { return NewDummyHook() }
func (c *ConstVar) LastUpdate() UpdateID          { return Never }
func (c *ConstVar) ModifyInfo() ModifyInfo        { return ModifyInfo{} }
func (c *ConstVar) ModifyImportance() uint64      { return 0 }
func (c *ConstVar) IsAnimating() bool             { return false }
func (c *ConstVar) HookAnimationStop(func()) bool { return false }
