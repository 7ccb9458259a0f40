// Package classify decides, for a single markup node, whether it is a
// heading (and at which level) or a landmark (and with which role), and
// resolves a landmark's accessible name. Classification is pure: it never
// mutates the document and keeps no state beyond the id index built once
// per parsed document.
package classify
