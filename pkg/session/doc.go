/*
Package session owns a mission document and the projection that edits it.

A Manager wraps a model.Model with whole-document operations: new, load, remove,
save to and open from files, and commit to or check out from a ports.DocumentStore.
Store access is serialized per document id, optionally across processes through a
ports.DistributedLocker. Editing itself is single-goroutine, like the model.
*/
package session
