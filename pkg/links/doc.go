// Package links resolves inline link tags into HTML anchors and validates
// that their targets still resolve.
//
// Callers hand the Engine an ordered set of raw tag strings with their parsed
// attributes. Tags are grouped by provider key and each group is resolved with
// a single Provider.Preload call, so the cost of a document does not grow with
// the number of tags it contains. Targets that do not resolve degrade to plain
// text in ParseAll and are reported as ValidationRemoved by ValidateAll.
package links
