// Package snapshot rasterizes a single engine frame to an image, for
// headless previews and the snapshot command.
package snapshot
