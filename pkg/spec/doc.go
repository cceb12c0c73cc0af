// Package spec reads fence diagram spec files and resolves them into a
// [fence.Spec] in millimetres.
//
// A spec file is TOML or JSON. Lengths are written in the file's unit
// ("mm" when absent) and may be numbers or strings using either decimal
// separator, so "12,5" and 12.5 are equivalent:
//
//	title = "Gate G-1"
//	unit = "mm"
//	scale = 0.25
//	width = 1200
//	height = 1800
//	frame_thickness = 40
//	panels = [520, 520, 520]
//	gaps = [50, 30, 30, 50]
//
//	[omega]
//	height = 60
//	extend_right = "150,0"
//
// Decoding is lenient about number syntax and strict about structure:
// unknown keys are rejected. [Resolve] converts every length to
// millimetres and validates the result, naming the offending field.
package spec
