package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ChangeOp names the kind of difference found by Diff.
type ChangeOp string

const (
	ChangeAdded   ChangeOp = "added"
	ChangeRemoved ChangeOp = "removed"
	ChangeRenamed ChangeOp = "renamed"
	ChangeRetyped ChangeOp = "retyped"
)

// Change is a single positional difference between two documents.
type Change struct {
	// Path is the row of each ancestor from the mission down to the changed fragment.
	// An empty path is the mission itself.
	Path    []int    `json:"path"`
	Op      ChangeOp `json:"op"`
	OldKind Kind     `json:"old_kind,omitempty"`
	NewKind Kind     `json:"new_kind,omitempty"`
	OldName string   `json:"old_name,omitempty"`
	NewName string   `json:"new_name,omitempty"`
}

func (c Change) String() string {
	parts := make([]string, len(c.Path))
	for i, r := range c.Path {
		parts[i] = strconv.Itoa(r)
	}
	path := "/" + strings.Join(parts, "/")
	switch c.Op {
	case ChangeAdded:
		return fmt.Sprintf("%s %s %s %q", path, c.Op, c.NewKind, c.NewName)
	case ChangeRemoved:
		return fmt.Sprintf("%s %s %s %q", path, c.Op, c.OldKind, c.OldName)
	case ChangeRetyped:
		return fmt.Sprintf("%s %s %s -> %s", path, c.Op, c.OldKind, c.NewKind)
	default:
		return fmt.Sprintf("%s %s %q -> %q", path, c.Op, c.OldName, c.NewName)
	}
}

// DocumentDiff lists the changes between two versions of a mission.
type DocumentDiff struct {
	Changes []Change `json:"changes,omitempty"`
}

// Diff compares two missions position by position.
// A subtree whose kind changed is reported once as retyped and not descended into.
// If both are nil or identical it returns nil.
func Diff(oldDoc, newDoc *Mission) *DocumentDiff {
	d := &DocumentDiff{}
	var o, n Fragment
	if oldDoc != nil {
		o = oldDoc
	}
	if newDoc != nil {
		n = newDoc
	}
	d.walk(nil, o, n)
	if d.IsEmpty() {
		return nil
	}
	return d
}

func (d *DocumentDiff) walk(path []int, o, n Fragment) {
	ok, nk := Classify(o), Classify(n)
	switch {
	case ok == KindUndefined && nk == KindUndefined:
		return
	case ok == KindUndefined:
		d.add(path, Change{Op: ChangeAdded, NewKind: nk, NewName: n.GetName()})
		return
	case nk == KindUndefined:
		d.add(path, Change{Op: ChangeRemoved, OldKind: ok, OldName: o.GetName()})
		return
	case ok != nk:
		d.add(path, Change{Op: ChangeRetyped, OldKind: ok, NewKind: nk, OldName: o.GetName(), NewName: n.GetName()})
		return
	}

	if o.GetName() != n.GetName() {
		d.add(path, Change{Op: ChangeRenamed, OldKind: ok, NewKind: nk, OldName: o.GetName(), NewName: n.GetName()})
	}

	oc, nc := Children(o), Children(n)
	for i := 0; i < len(oc) || i < len(nc); i++ {
		var oi, ni Fragment
		if i < len(oc) {
			oi = oc[i]
		}
		if i < len(nc) {
			ni = nc[i]
		}
		d.walk(append(path, i), oi, ni)
	}
}

func (d *DocumentDiff) add(path []int, c Change) {
	c.Path = append([]int(nil), path...)
	d.Changes = append(d.Changes, c)
}

// IsEmpty checks if the diff contains any change.
func (d *DocumentDiff) IsEmpty() bool {
	return d == nil || len(d.Changes) == 0
}
