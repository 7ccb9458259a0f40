// Package structure reconstructs hierarchical trees from the flat,
// document-ordered element sequences produced by the classifier. Two
// builders share the same discipline: heading nesting is keyed by numeric
// level using an explicit stack, landmark nesting by containment in the
// source document.
package structure
