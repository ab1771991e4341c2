package transport

import (
	"github.com/sirupsen/logrus"

	"github.com/mohamed3ma/helios/geometry"
)

var log = logrus.WithField("package", "transport")

// Driver is the thin collaborator surface a batch runner uses to advance
// one particle through the geometry (§5 data flow: "driver queries D
// repeatedly during each particle history"). It does not sample reactions
// or accumulate tallies — those are the out-of-scope physics and driver
// layers; Driver only owns the navigator calls and the failure-code
// translation policy of §7.
type Driver struct {
	nav *geometry.Navigator
}

// NewDriver wraps a navigator for use by history-stepping code.
func NewDriver(nav *geometry.Navigator) *Driver {
	return &Driver{nav: nav}
}

// Birth locates a particle's initial geometry stack from its birth
// position and direction, terminating it with FailureUnboundedGeometry
// if the navigator can't place it.
func (d *Driver) Birth(p *Particle, position, direction geometry.Vec3) {
	state, err := d.nav.Locate(position, direction)
	if err != nil {
		d.fail(p, err)
		return
	}
	p.Stack = state
}

// Step advances a live particle to its next surface crossing (§4.D
// distanceToNext + cross, driven one boundary at a time). It returns the
// distance traveled; callers sample a collision against that distance
// and call Step again, or (in the out-of-scope physics layer) interrupt
// the flight with a reaction before the full distance is reached.
func (d *Driver) Step(p *Particle) (distance float64, ok bool) {
	if !p.Alive() {
		return 0, false
	}
	crossing, err := d.nav.DistanceToNext(p.Stack)
	if err != nil {
		d.fail(p, err)
		return 0, false
	}
	if err := d.nav.Cross(p.Stack, crossing); err != nil {
		d.fail(p, err)
		return 0, false
	}
	return crossing.Distance, true
}

func (d *Driver) fail(p *Particle, err error) {
	code := FailureUnknown
	switch err.(type) {
	case geometry.GeometryUnbounded:
		code = FailureUnboundedGeometry
	case geometry.NoBoundary:
		code = FailureNoBoundary
	}
	p.Terminate(code, err)
	log.WithFields(logrus.Fields{
		"history": p.HistoryIndex,
		"failure": code.String(),
	}).Warn("history terminated")
}
