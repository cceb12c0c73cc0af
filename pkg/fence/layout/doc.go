// Package layout turns a [fence.Spec] into an ordered list of drawing
// primitives.
//
// The engine works in model units (millimetres) and multiplies every
// geometric coordinate by the spec's scale exactly once, when the
// primitive is emitted. Annotation offsets (label column, dimension
// offsets, font sizes) are drawing units and do not scale.
//
// Coordinates have their origin at the module's top-left outer corner with
// Y pointing down. Attachments hang below the module and the tail and
// omega extensions may reach negative X.
//
// The engine never fails: negative inner sizes clamp to zero, missing gap
// entries default to zero and absent attachments contribute nothing.
// Callers that want stricter behaviour use [fence.CheckStack] and
// [fence.Validate] before calling [Build].
//
// Draw order is fixed: inner stack content, frame, attachments, tail,
// annotations. Later primitives paint over earlier ones.
package layout
