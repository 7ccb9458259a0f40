package structure

import (
	"golang.org/x/net/html"

	"github.com/crinis/mindfula11y-sub001/internal/classify"
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// BuildLandmarkTree reconstructs the landmark forest from landmarks in
// document order. Nesting is containment-based, independent of any numeric
// level: each landmark attaches to the nearest ancestor in the full document
// tree that is itself a classified landmark, skipping non-landmark ancestors
// on the way up. Landmarks with no landmark ancestor become roots. Sibling
// order follows document order of first appearance.
func BuildLandmarkTree(landmarks []classify.Landmark) []*model.LandmarkNode {
	roots := make([]*model.LandmarkNode, 0)

	// Document order guarantees an ancestor element is classified before any
	// of its descendants, so the lookup table is always complete by the time
	// a child searches for its parent.
	byElement := make(map[*html.Node]*model.LandmarkNode, len(landmarks))

	for _, lm := range landmarks {
		node := &model.LandmarkNode{
			Role:           lm.Role,
			AccessibleName: lm.AccessibleName,
			Hints:          lm.Hints,
			Element:        lm.Element,
		}
		byElement[lm.Element] = node

		if parent := nearestLandmarkAncestor(lm.Element, byElement); parent != nil {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// nearestLandmarkAncestor walks up the ancestor chain of element and returns
// the landmark node of the closest ancestor that was classified as a
// landmark, or nil if none exists.
func nearestLandmarkAncestor(element *html.Node, byElement map[*html.Node]*model.LandmarkNode) *model.LandmarkNode {
	for ancestor := element.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if node, ok := byElement[ancestor]; ok {
			return node
		}
	}
	return nil
}
