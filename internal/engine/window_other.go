//go:build !windows

package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// SetDarkTitleBar is only supported on Windows.
func SetDarkTitleBar(window *glfw.Window) {}

// SetWindowBorderColor is only supported on Windows.
func SetWindowBorderColor(r, g, b float32) {}
