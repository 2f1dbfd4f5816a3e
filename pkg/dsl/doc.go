/*
Package dsl builds mission documents in Go with a fluent API.

Example usage:

	b := dsl.New("Survey")

	b.Point("P0")
	b.Collection("Scenario").
		Point("P1").
		Rail("R0").
		Segment("S1")
	b.Device("Drone").
		Collection("Route").Point("R0").Point("R1")

	mission, err := b.Build()

Lines get their two points named after the line kind (RA/RB, SA/SB) unless
explicit names are given. Build validates the result.
*/
package dsl
