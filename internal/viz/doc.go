// Package viz is the terminal front end for the attractor engine.
//
// The view is built with Bubble Tea:
//
//   - [Model]: drives the engine from a refresh tick and forwards mouse,
//     wheel and focus events to it
//   - [Canvas]: braille pixel canvas with one color per cell
//   - [Projector]: perspective projection of the engine pose onto the
//     canvas
//
// # Key Bindings
//
//	Drag     - Pan
//	Move     - Rotate
//	Wheel    - Scroll (yaw)
//	+/-      - Zoom
//	Tab      - Cycle parameters
//	Up/Down  - Restart with the selected parameter ±5%
//	S        - Frame time chart
//	Ctrl+Z   - Suspend (pauses the animation)
//	?        - Full help
//	Q        - Quit
package viz
