// Package rules detects structural violations on the built heading and
// landmark trees. Each rule produces two kinds of output: per-node
// annotations attached to individual tree nodes and page-level findings
// merged into a deduplicated, counted diagnostic set. Rules write to
// disjoint diagnostic keys and per-node tags are set unions, so the order
// of rule application never affects the final result.
package rules
