// Package fence defines the parameter set describing a modular fence or
// gate panel and the quantities derived from it.
//
// # Model
//
// A [Spec] describes one module seen from the side:
//
//   - an outer rectangle OuterW × OuterH, optionally bordered by a frame of
//     uniform thickness
//   - a vertical stack of panels separated by gaps
//   - optional vertical reinforcement bars inside the frame
//   - up to three attachments below the module, always stacked in the order
//     brackets (A), profile (B), omega (Ω)
//   - an optional schematic tail used to sketch sliding-gate variants
//
// All lengths are millimetres. Unit conversion happens before a Spec is
// built (see the spec package); the layout engine never sees other units.
//
// # Gaps
//
// The meaning of [Spec.Gaps] depends on [Spec.WithFrame]. With a frame the
// list is [top, mid_1 … mid_{k-1}, bottom], one longer than the panel list.
// Without a frame there is no top or bottom gap and the list holds only the
// k-1 gaps between panels.
//
// The engine is permissive about the length of the list: missing entries
// count as zero. [CheckStack] reports mismatches so that callers can warn
// or refuse.
//
// # Lifecycle
//
// A Spec is built fresh for every render and treated as immutable; layout
// functions never modify it.
package fence
