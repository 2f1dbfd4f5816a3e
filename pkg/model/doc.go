/*
Package model exposes a mission document as an indexable, observable tree.

Consumers address cells with Index values obtained from Index, Parent or IndexForPath.
The zero Index is the sentinel root. Every node is shown in two columns, the kind label
and the name.

Mutations are authorized against domain.Resolve before any side effect and are
bracketed by the AboutTo/done hook pairs exactly once, at the public entry point.
A mutation started from inside a hook is rejected with domain.ErrReentrant.

Drag and drop works on MimeData payloads: an ordered list of packed role maps that
can be dropped, as copies, under any node whose features accept them, or moved.
*/
package model
