/*
Package ports defines the driven ports (interfaces) for the waypoint editor.

These interfaces decouple the tree engine and the session from concrete codecs and
storage backends.

# Key Interfaces

  - Codec: packs a fragment to bytes and unpacks bytes into a fragment.
  - DocumentStore: persists encoded mission documents keyed by ID.
  - DistributedLocker: coordinates access to a document ID across processes.
*/
package ports
