package model

import "golang.org/x/net/html"

// Role identifies a landmark region type.
// The set is closed: only the roles listed below ever appear in a landmark
// tree. RoleNone marks elements that are not landmarks and is filtered out
// before tree construction.
type Role string

// Landmark roles recognized by the classifier.
const (
	RoleNone          Role = ""
	RoleRegion        Role = "region"
	RoleNavigation    Role = "navigation"
	RoleComplementary Role = "complementary"
	RoleMain          Role = "main"
	RoleBanner        Role = "banner"
	RoleContentInfo   Role = "contentinfo"
	RoleSearch        Role = "search"
	RoleForm          Role = "form"
)

// ErrorReason tags a landmark node with the kind of violation it
// participates in. A node can carry several reasons at once.
type ErrorReason string

// Landmark violation reasons.
const (
	ErrorReasonDuplicateMain            ErrorReason = "duplicate-main"
	ErrorReasonDuplicateLabel           ErrorReason = "duplicate-same-label"
	ErrorReasonMultipleUnlabeledPerRole ErrorReason = "multiple-unlabeled-same-role"
)

// EditHints carries per-node editability metadata precomputed by the
// surrounding application. The engine passes these through unmodified; it
// neither computes nor validates them.
type EditHints struct {
	// AvailableLevels lists the heading levels the current user may change
	// this element to. Empty means the element is not editable.
	AvailableLevels []int `json:"available_levels,omitempty"`

	// AvailableRoles lists the landmark roles the current user may change
	// this element to. Empty means the element is not editable.
	AvailableRoles []Role `json:"available_roles,omitempty"`

	// EditTarget is an opaque reference identifying the element for the
	// external edit operation.
	EditTarget string `json:"edit_target,omitempty"`
}

// HeadingNode is a single heading in the reconstructed heading tree.
// Nodes are created fresh on every analysis run and never shared between
// runs.
type HeadingNode struct {
	// Level is the heading level, 1 through 6.
	Level int `json:"level"`

	// Text is the trimmed text content of the heading, carried for display.
	Text string `json:"text,omitempty"`

	// SkippedLevels is the number of heading levels jumped over between
	// this node and its structural parent. Zero means the nesting is sound.
	SkippedLevels int `json:"skipped_levels"`

	// Children are the headings nested under this one, in document order.
	Children []*HeadingNode `json:"children,omitempty"`

	// Hints carries pass-through editability metadata, if any.
	Hints EditHints `json:"hints,omitzero"`

	// Element is the originating markup node. It identifies the heading for
	// rendering and edit wiring; it is never used for content equality.
	Element *html.Node `json:"-"`
}

// HasError reports whether this heading violates level nesting.
func (n *HeadingNode) HasError() bool {
	return n.SkippedLevels > 0
}

// LandmarkNode is a single landmark region in the reconstructed landmark
// tree. Same lifecycle rules as HeadingNode.
type LandmarkNode struct {
	// Role is the resolved landmark role. Never RoleNone inside a tree.
	Role Role `json:"role"`

	// AccessibleName is the resolved label of the landmark, possibly empty.
	AccessibleName string `json:"accessible_name,omitempty"`

	// Children are the landmarks structurally contained in this one, in
	// document order.
	Children []*LandmarkNode `json:"children,omitempty"`

	// ErrorReasons collects the violation kinds this node participates in.
	ErrorReasons []ErrorReason `json:"error_reasons,omitempty"`

	// Hints carries pass-through editability metadata, if any.
	Hints EditHints `json:"hints,omitzero"`

	// Element is the originating markup node, used for identity only.
	Element *html.Node `json:"-"`
}

// HasError reports whether this landmark carries any violation tag.
func (n *LandmarkNode) HasError() bool {
	return len(n.ErrorReasons) > 0
}

// AddErrorReason tags the node with a violation kind. Tagging is a set
// union: adding the same reason twice has no effect.
func (n *LandmarkNode) AddErrorReason(reason ErrorReason) {
	for _, r := range n.ErrorReasons {
		if r == reason {
			return
		}
	}
	n.ErrorReasons = append(n.ErrorReasons, reason)
}

// HasErrorReason reports whether the node carries the given violation tag.
func (n *LandmarkNode) HasErrorReason(reason ErrorReason) bool {
	for _, r := range n.ErrorReasons {
		if r == reason {
			return true
		}
	}
	return false
}
