// Package models holds the wire-level records the rtcontour CLI
// exchanges with files on disk.
package models

import "rtcontour/pkg/transform"

// ScriptedStroke is one recorded brush gesture: the pointer path in
// canvas pixels plus the brush settings active when it was drawn.
type ScriptedStroke struct {
	// Points is the pointer path, canvas pixels, in capture order.
	Points [][2]float64 `json:"points"`

	// Radius is the brush radius in mm. 0 keeps the previous radius.
	Radius float64 `json:"radius,omitempty"`

	// Invert swaps the containment-based operation mode.
	Invert bool `json:"invert,omitempty"`

	// ROINumber selects the target structure.
	ROINumber int `json:"roiNumber"`
}

// StrokeScript is a replayable editing session: a view state and the
// strokes to apply under it.
type StrokeScript struct {
	View    transform.View   `json:"view"`
	Canvas  transform.Canvas `json:"canvas"`
	Strokes []ScriptedStroke `json:"strokes"`
}
