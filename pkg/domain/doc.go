/*
Package domain contains the mission document model and the pure rules that classify and
authorize its parts.

It is kept free of I/O, logging and persistence so that the tree engine, the codecs and the
stores can all share one vocabulary.

# Key Entities

  - Fragment: a typed part of a mission document (Mission, Device, Collection, Line, Point).
  - Kind: the closed discriminant of a fragment, fixed by its Go type.
  - Interpretation: the derived reading of a Collection (Scenario, Route or Family).
  - Features: the set of operations permitted on a fragment in its current context.
*/
package domain
