/*
Package waypoint edits hierarchical mission documents through a tree projection.

A mission holds devices, collections, rails, segments and points. The projection
addresses every fragment by (row, column, parent), derives what each node may hold from
its kind and its children, and keeps the document and the tree in step across inserts,
removals, swaps, moves and drag and drop.

# Concept

The document is the source of truth. Every node of the projection points at the fragment
it mirrors, so a mutation either changes both or neither. Collections are interpreted
from their children: only points make a Route, only rails make a Family, anything else is
a Scenario. The interpretation decides the features (add, delete, swap, edit) the node
offers.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/waypoint"
		"github.com/aretw0/waypoint/pkg/adapters/memory"
		"github.com/aretw0/waypoint/pkg/domain"
	)

	func main() {
		ed := waypoint.New(waypoint.WithStore(memory.NewStore()))

		// The mission is at path 0.
		if _, err := ed.AddAt(domain.KindCollection, 0); err != nil {
			log.Fatal(err)
		}
		if _, err := ed.AddAt(domain.KindRail, 0, 0); err != nil {
			log.Fatal(err)
		}

		id, err := ed.Commit(context.Background(), "")
		if err != nil {
			log.Fatal(err)
		}
		log.Println("committed", id)
	}

# Persistence

Documents are encoded by a ports.Codec (protobuf wire, JSON or YAML) and kept in a
ports.DocumentStore: memory, file, Redis or BadgerDB. Stores can be wrapped with
middleware for AES-GCM encryption and Prometheus metrics.
*/
package waypoint
