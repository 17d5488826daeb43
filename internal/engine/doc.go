// Package engine owns the whole simulation and animation state.
//
// An [Engine] holds every line's trajectory, the shared color ramp, the
// particle layout, the interaction controller and the frame scheduler.
// A driver that owns the display refresh calls Tick with a monotonic
// timestamp; when a frame runs, Tick returns the assembled buffers and
// pose, and Present hands them to a [Sink].
//
// Nothing here blocks or spawns goroutines. Input handlers reached
// through Input only write targets, so the driver can call them between
// ticks from the same goroutine without locking.
package engine
