// Package scene defines the scene graph shared by the compliance engine and
// the format adapter.
//
// # Overview
//
// A [Scene] is a canvas (width, height, background color) holding an ordered
// list of [Element] values. Each element is a tagged union discriminated by
// [Kind]:
//
//   - [KindImage]: carries an [ImagePayload] with an opaque source handle
//   - [KindText]: carries a [TextPayload] with text, font and color
//   - [KindShape]: carries a [ShapePayload] with a shape name and optional fill
//
// Exactly the payload matching Kind must be set; [Scene.Validate] rejects
// anything else. Element roles ([RoleProduct], [RoleLogo], ...) are
// independent of kind and drive policy in downstream packages.
//
// # Value Semantics
//
// Scenes are snapshots. Functions that accept a Scene never mutate it and
// never keep references into it; they call [Scene.Clone] when they need a
// working copy. Callers may keep editing their own scene after handing it
// to the compliance engine or the format adapter.
//
// # Paint Order
//
// Elements paint by ascending ZIndex. Ties keep insertion order, which
// [Scene.PaintOrder] preserves with a stable sort.
package scene
