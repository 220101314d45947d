package internal

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"weak"
)

type whenCase struct {
	cond  AnyVar
	value AnyVar
}

// WhenBuilder collects condition/value pairs in priority order (first
// pushed wins) plus a default.
type WhenBuilder struct {
	def     AnyVar
	cases   []whenCase
	context ContextSource
}

func NewWhenBuilder(def AnyVar) *WhenBuilder {
	return &WhenBuilder{def: def, context: GoroutineContexts}
}

// Push adds a branch. Type identity is checked here so a bad pair fails
// at construction, not at first access.
func (b *WhenBuilder) Push(cond, value AnyVar) *WhenBuilder {
	if cond.ValueType() != boolType {
		violation(ErrNotBool, "condition %d holds %s", len(b.cases), cond.ValueType())
	}
	if value.ValueType() != b.def.ValueType() {
		violation(ErrTypeMismatch, "branch %d holds %s, default holds %s", len(b.cases), value.ValueType(), b.def.ValueType())
	}

	b.cases = append(b.cases, whenCase{cond: cond, value: value})
	return b
}

// WithContexts sets how contextual inputs find the observing context.
func (b *WhenBuilder) WithContexts(source ContextSource) *WhenBuilder {
	if source != nil {
		b.context = source
	}
	return b
}

func (b *WhenBuilder) Len() int {
	return len(b.cases)
}

// Build finalizes the builder. Zero branches alias the default. If any
// input is contextual the build is deferred and done once per context.
func (b *WhenBuilder) Build() AnyVar {
	if len(b.cases) == 0 {
		return b.def
	}

	snapshot := b.clone()
	if snapshot.contextual() {
		return NewContextualVar(b.def.ValueType(), func(ctx ContextID) AnyVar {
			return snapshot.in(ctx).build()
		}, b.context)
	}

	return snapshot.build()
}

func (b *WhenBuilder) clone() *WhenBuilder {
	return &WhenBuilder{
		def:     b.def,
		cases:   slices.Clone(b.cases),
		context: b.context,
	}
}

func (b *WhenBuilder) contextual() bool {
	if isContextual(b.def) {
		return true
	}

	for _, c := range b.cases {
		if isContextual(c.cond) || isContextual(c.value) {
			return true
		}
	}

	return false
}

// in snapshots every input as seen from ctx.
func (b *WhenBuilder) in(ctx ContextID) *WhenBuilder {
	out := &WhenBuilder{
		def:     resolveIn(b.def, ctx),
		cases:   make([]whenCase, len(b.cases)),
		context: b.context,
	}
	for i, c := range b.cases {
		out.cases[i] = whenCase{cond: resolveIn(c.cond, ctx), value: resolveIn(c.value, ctx)}
	}

	return out
}

func (b *WhenBuilder) build() *WhenVar {
	d := &whenData{
		cases: b.cases,
		def:   b.def,
	}
	d.caps = d.derivedCaps()

	wk := weak.Make(d)
	for i, c := range d.cases {
		d.handles = append(d.handles, c.cond.Hook(func(args *HookArgs) bool {
			d := wk.Value()
			if d == nil {
				return false
			}

			d.onCondition(i, args.Update)
			return true
		}))
	}
	for i := 0; i <= len(d.cases); i++ {
		d.handles = append(d.handles, d.branch(i).Hook(func(args *HookArgs) bool {
			d := wk.Value()
			if d == nil {
				return false
			}

			d.onValue(i, args)
			return true
		}))
	}

	d.selectMu.Lock()
	d.active.Store(int64(d.scan()))
	d.selectMu.Unlock()

	return &WhenVar{data: d}
}

// whenData is the state shared by a WhenVar and the hooks it installed.
// Hooks only hold it weakly.
type whenData struct {
	cases []whenCase
	def   AnyVar

	// index into cases, len(cases) selects def
	active           atomic.Int64
	lastActiveChange atomic.Uint64
	lastValueChange  atomic.Uint64

	// serializes selection transitions
	selectMu sync.Mutex

	caps    Capability
	hooks   Hooks
	handles []*HookHandle
}

func (d *whenData) branch(i int) AnyVar {
	if i >= 0 && i < len(d.cases) {
		return d.cases[i].value
	}

	return d.def
}

func (d *whenData) activeIndex() int {
	i := int(d.active.Load())
	if i < 0 || i > len(d.cases) {
		return len(d.cases)
	}

	return i
}

// scan returns the first true condition, or the default index.
func (d *whenData) scan() int {
	for i, c := range d.cases {
		if v, _ := c.cond.Get().(bool); v {
			return i
		}
	}

	return len(d.cases)
}

// onCondition applies a condition change. Only the active condition
// turning false or a higher priority one turning true can move the
// selection; nothing else is rescanned. The condition is read again under
// the lock since notifications for one variable may arrive out of commit
// order across goroutines.
func (d *whenData) onCondition(i int, update UpdateID) {
	d.selectMu.Lock()

	value, _ := d.cases[i].cond.Get().(bool)
	cur := d.activeIndex()
	next := cur
	switch {
	case i == cur && !value:
		next = d.scan()
	case i < cur && value:
		next = i
	}

	if next == cur {
		d.selectMu.Unlock()
		return
	}

	prevLast := d.lastUpdate()
	d.active.Store(int64(next))
	stamp := stampAfter(update, prevLast)
	d.lastActiveChange.Store(uint64(stamp))
	d.selectMu.Unlock()

	selectionChangesTotal.Inc()
	logger().WithField("from", cur).WithField("to", next).WithField("update", stamp).Debug("when selection changed")

	d.hooks.Notify(&HookArgs{Value: d.branch(next).Get(), Update: stamp})
}

func (d *whenData) onValue(i int, args *HookArgs) {
	d.selectMu.Lock()
	if d.activeIndex() != i {
		d.selectMu.Unlock()
		return
	}

	// a selection change earlier in the same round may already be ahead
	// of the branch's own stamp
	prevLast := maxUpdate(UpdateID(d.lastActiveChange.Load()), UpdateID(d.lastValueChange.Load()))
	stamp := stampAfter(args.Update, prevLast)
	d.lastValueChange.Store(uint64(stamp))
	d.selectMu.Unlock()

	d.hooks.Notify(&HookArgs{Value: args.Value, Update: stamp, Tags: args.Tags})
}

func (d *whenData) lastUpdate() UpdateID {
	own := maxUpdate(UpdateID(d.lastActiveChange.Load()), UpdateID(d.lastValueChange.Load()))
	return maxUpdate(own, d.branch(d.activeIndex()).LastUpdate())
}

// derivedCaps computes what switching branches can change. Any branch
// that varies its own capabilities, or branches that disagree, make the
// when variable vary too once a condition can update.
func (d *whenData) derivedCaps() Capability {
	var caps Capability

	selectable := false
	for _, c := range d.cases {
		if c.cond.Capabilities().Has(CapNew) {
			selectable = true
		}
	}
	if selectable {
		caps |= CapNew
	}

	first := d.def.Capabilities()
	for i := 0; i <= len(d.cases); i++ {
		bc := d.branch(i).Capabilities()

		if bc.Has(CapNew) {
			caps |= CapNew
		}
		if bc.Has(CapModifyChanges) || (selectable && bc&CapModify != first&CapModify) {
			caps |= CapModifyChanges
		}
		if bc.Has(CapContextChanges) || (selectable && bc&CapContext != first&CapContext) {
			caps |= CapContextChanges
		}
	}

	return caps
}

// WhenVar forwards every operation to the branch selected by the first
// true condition, or to the default. It has no value of its own.
type WhenVar struct {
	data *whenData
}

func (w *WhenVar) sealed() {}

func (w *WhenVar) Kind() Kind { return KindWhen }

func (w *WhenVar) ValueType() reflect.Type { return w.data.def.ValueType() }

// ActiveIndex returns the selected branch, len(conditions) for the default.
func (w *WhenVar) ActiveIndex() int { return w.data.activeIndex() }

// Len returns the number of condition branches.
func (w *WhenVar) Len() int { return len(w.data.cases) }

func (w *WhenVar) active() AnyVar { return w.data.branch(w.data.activeIndex()) }

func (w *WhenVar) Get() any                         { return w.active().Get() }
func (w *WhenVar) Set(value any) bool               { return w.active().Set(value) }
func (w *WhenVar) Modify(fn func(*ModifyCtx)) bool  { return w.active().Modify(fn) }
func (w *WhenVar) Update() bool                     { return w.active().Update() }
func (w *WhenVar) ModifyInfo() ModifyInfo           { return w.active().ModifyInfo() }
func (w *WhenVar) ModifyImportance() uint64         { return w.active().ModifyImportance() }
func (w *WhenVar) IsAnimating() bool                { return w.active().IsAnimating() }
func (w *WhenVar) HookAnimationStop(fn func()) bool { return w.active().HookAnimationStop(fn) }

func (w *WhenVar) Capabilities() Capability {
	return w.active().Capabilities() | w.data.caps
}

func (w *WhenVar) Hook(fn HookFn) *HookHandle {
	return w.data.hooks.Push(fn)
}

// LastUpdate is the newest of the last selection change, the last
// forwarded branch update and the active branch's own last update.
func (w *WhenVar) LastUpdate() UpdateID {
	return w.data.lastUpdate()
}
