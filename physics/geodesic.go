// Package physics implements null geodesic propagation in the
// Schwarzschild spacetime, in geometric units with the black hole mass
// fixed at M=1. Coordinates are (t, r, theta, phi).
package physics

import "math"

// M is the black hole mass in geometric units (G=c=1).
const M = 1.0

// EventHorizon is the Schwarzschild radius 2M.
const EventHorizon = 2.0 * M

// PhotonSphere is the radius of unstable circular photon orbits.
const PhotonSphere = 3.0 * M

// thetaEps keeps theta away from the coordinate singularity at the
// poles. This is a numerical guard, not a physical boundary.
const thetaEps = 1e-6

// A returns the Schwarzschild lapse 1 - 2M/r.
func A(r float64) float64 {
	return 1.0 - 2.0*M/r
}

// Metric returns the nonzero (diagonal) covariant metric components
// g_tt, g_rr, g_thth, g_phph at (r, theta).
func Metric(r, th float64) (gtt, grr, gthth, gphph float64) {
	ar := A(r)
	s := math.Sin(th)
	return -ar, 1.0 / ar, r * r, r * r * s * s
}

// Accel computes the geodesic acceleration a^mu = -Gamma^mu_ab v^a v^b
// from the closed-form Schwarzschild Christoffel symbols.
func Accel(x, v *[4]float64, a *[4]float64) {
	r, th := x[1], x[2]
	s, c := math.Sin(th), math.Cos(th)
	ar := A(r)

	gttr := M / (r * (r - 2.0*M))
	grtt := ar * M / (r * r)
	grrr := -M / (r * (r - 2.0*M))
	grthth := -(r - 2.0*M)
	grphph := -(r - 2.0*M) * s * s
	gthrth := 1.0 / r
	gthphph := -s * c
	gphrph := 1.0 / r
	gphthph := c / (s + 1e-12)

	vt, vr, vth, vph := v[0], v[1], v[2], v[3]
	a[0] = -2.0 * gttr * vt * vr
	a[1] = -(grtt*vt*vt + grrr*vr*vr + grthth*vth*vth + grphph*vph*vph)
	a[2] = -(2.0*gthrth*vr*vth + gthphph*vph*vph)
	a[3] = -(2.0*gphrph*vr*vph + 2.0*gphthph*vth*vph)
}

// StepRK4 advances (x, v) by one classical 4th-order Runge-Kutta step
// of size h and clamps theta into (thetaEps, pi-thetaEps). Numerically
// invalid results (NaN/Inf) are not detected here; callers treat them
// as zero contribution downstream.
func StepRK4(x, v *[4]float64, h float64) {
	var k1x, k2x, k3x, k4x [4]float64
	var k1v, k2v, k3v, k4v [4]float64
	var a, xt, vt [4]float64

	Accel(x, v, &a)
	for i := 0; i < 4; i++ {
		k1x[i] = h * v[i]
		k1v[i] = h * a[i]
		xt[i] = x[i] + 0.5*k1x[i]
		vt[i] = v[i] + 0.5*k1v[i]
	}
	Accel(&xt, &vt, &a)
	for i := 0; i < 4; i++ {
		k2x[i] = h * vt[i]
		k2v[i] = h * a[i]
		xt[i] = x[i] + 0.5*k2x[i]
		vt[i] = v[i] + 0.5*k2v[i]
	}
	Accel(&xt, &vt, &a)
	for i := 0; i < 4; i++ {
		k3x[i] = h * vt[i]
		k3v[i] = h * a[i]
		xt[i] = x[i] + k3x[i]
		vt[i] = v[i] + k3v[i]
	}
	Accel(&xt, &vt, &a)
	for i := 0; i < 4; i++ {
		k4x[i] = h * vt[i]
		k4v[i] = h * a[i]
	}
	for i := 0; i < 4; i++ {
		x[i] += (k1x[i] + 2.0*k2x[i] + 2.0*k3x[i] + k4x[i]) / 6.0
		v[i] += (k1v[i] + 2.0*k2v[i] + 2.0*k3v[i] + k4v[i]) / 6.0
	}

	if x[2] < thetaEps {
		x[2] = thetaEps
	}
	if x[2] > math.Pi-thetaEps {
		x[2] = math.Pi - thetaEps
	}
}

// StepSize selects the integration step for the given radius: the base
// step is reduced to 1/4 below r=10 and 1/8 below r=6, trading speed
// for accuracy in the strong-field region.
func StepSize(r, h0 float64) float64 {
	switch {
	case r < 6.0:
		return 0.125 * h0
	case r < 10.0:
		return 0.25 * h0
	}
	return h0
}
