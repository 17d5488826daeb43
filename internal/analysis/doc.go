// Package analysis estimates how chaotic a system is.
//
// The largest Lyapunov exponent is measured by following a reference
// trajectory and a companion started a small distance away, pulling
// the companion back to that distance after every step and averaging
// the log of the stretch (Benettin's method). A positive exponent
// means nearby lines separate exponentially: the reason seeds that
// start almost together spread over the whole attractor.
//
// Sweep repeats the estimate across a range of one coefficient, which
// shows where the system turns chaotic (for Lorenz, rho near 24.74).
package analysis
