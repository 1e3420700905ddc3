// Package component defines the lifecycle interface shared by everything
// the bootstrap package starts and stops, and a Registry that drives it.
//
// Components start in registration order and stop in reverse order. The
// singleton package adapts account providers into components so that lazy
// strategies construct during startup and report health afterwards.
package component
