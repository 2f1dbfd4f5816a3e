package model

// ChangeEvent describes a structural or data change.
// For row changes, Parent, First and Last are set; for data changes, Index and Roles.
type ChangeEvent struct {
	Parent      Index
	First, Last int
	Index       Index
	Roles       []Role
}

// Hooks are the change observers of a Model. Any of them may be nil.
//
// The AboutTo hooks run before the tree changes and the matching hook after it,
// so an observer never sees row counts that disagree with the document.
// Hooks may read the model; mutating it from a hook fails with domain.ErrReentrant.
type Hooks struct {
	OnRowsAboutToBeInserted func(ChangeEvent)
	OnRowsInserted          func(ChangeEvent)
	OnRowsAboutToBeRemoved  func(ChangeEvent)
	OnRowsRemoved           func(ChangeEvent)
	OnDataChanged           func(ChangeEvent)
	OnModelReset            func(ChangeEvent)
}

func (m *Model) emit(fn func(ChangeEvent), ev ChangeEvent) {
	if fn != nil {
		fn(ev)
	}
}

func (m *Model) beginInsert(parent Index, first, last int) {
	m.emit(m.hooks.OnRowsAboutToBeInserted, ChangeEvent{Parent: parent, First: first, Last: last})
}

func (m *Model) endInsert(parent Index, first, last int) {
	m.emit(m.hooks.OnRowsInserted, ChangeEvent{Parent: parent, First: first, Last: last})
}

func (m *Model) beginRemove(parent Index, first, last int) {
	m.emit(m.hooks.OnRowsAboutToBeRemoved, ChangeEvent{Parent: parent, First: first, Last: last})
}

func (m *Model) endRemove(parent Index, first, last int) {
	m.emit(m.hooks.OnRowsRemoved, ChangeEvent{Parent: parent, First: first, Last: last})
}
