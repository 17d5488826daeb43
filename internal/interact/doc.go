// Package interact is the pointer, touch and scroll state machine that
// steers the camera.
//
// A [Controller] is Idle or Dragging. Dragging moves pan targets; idle
// pointer motion moves rotation targets, so one gesture never drives
// both. Scrolling sets the yaw target directly. Touch start and end flip
// the width target between a rest and a squeezed value.
//
// Every frame [Controller.Smooth] eases each current value toward its
// target with its own [Smoother]. [Throttle] bounds how often move and
// scroll handlers run regardless of the device event rate.
package interact
