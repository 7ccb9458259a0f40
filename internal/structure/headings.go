package structure

import (
	"github.com/crinis/mindfula11y-sub001/internal/classify"
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// BuildHeadingTree reconstructs the heading forest from headings in document
// order.
//
// The algorithm is a single left-to-right pass over the sequence with an
// explicit parent stack. For each heading, entries whose level is greater
// than or equal to the incoming level are popped first; that is what makes a
// new heading outdent past same- or lower-level open headings and keeps
// equal levels siblings, never nested. The heading then attaches to the
// stack top, or becomes a root if the stack emptied, and is pushed.
//
// SkippedLevels records how many levels the heading jumped over relative to
// its structural parent; with an empty stack the parent is the implicit
// level-0 document start, so any non-H1 root is itself a skip. Each heading
// is pushed and popped exactly once, so the pass is O(n) amortized.
func BuildHeadingTree(headings []classify.Heading) []*model.HeadingNode {
	roots := make([]*model.HeadingNode, 0)
	stack := make([]*model.HeadingNode, 0)

	for _, h := range headings {
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		node := &model.HeadingNode{
			Level:   h.Level,
			Text:    h.Text,
			Hints:   h.Hints,
			Element: h.Element,
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			node.SkippedLevels = max(0, h.Level-parent.Level-1)
			parent.Children = append(parent.Children, node)
		} else {
			node.SkippedLevels = max(0, h.Level-1)
			roots = append(roots, node)
		}

		stack = append(stack, node)
	}

	return roots
}
