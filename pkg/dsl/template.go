package dsl

import "github.com/aretw0/waypoint/pkg/domain"

// TemplateName is the name of the mission returned by Template.
const TemplateName = "Waypoint Template Mission"

// Template returns a demo mission that exercises every collection interpretation:
// a loose point, a Scenario, a loose rail, a Route, a loose segment and a Family.
func Template() *domain.Mission {
	b := New(TemplateName)
	b.Point("P0")
	b.Collection("Scenario").
		Point("P1").
		Rail("R0").
		Segment("S1")
	b.Rail("R0")
	b.Collection("Route").
		Point("R0").
		Point("R1").
		Point("R2").
		Point("R3").
		Point("R4")
	b.Segment("S0")
	family := b.Collection("Family")
	for _, j := range []string{"J1", "J2", "J3", "J4", "J5"} {
		family.Rail(j, j+"A", j+"B")
	}
	return b.MustBuild()
}
