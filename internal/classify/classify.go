package classify

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// implicitRoles maps tag names to the landmark role they carry without an
// explicit role attribute. A section element is absent on purpose: it is a
// landmark only when it has a non-empty accessible name (see ClassifyLandmark).
var implicitRoles = map[string]model.Role{
	"main":   model.RoleMain,
	"nav":    model.RoleNavigation,
	"aside":  model.RoleComplementary,
	"header": model.RoleBanner,
	"footer": model.RoleContentInfo,
	"form":   model.RoleForm,
}

// explicitRoles is the closed set of role attribute values that yield a
// landmark. Any other explicit role value suppresses landmark classification
// entirely, including the tag's implicit role.
var explicitRoles = map[string]model.Role{
	"region":        model.RoleRegion,
	"navigation":    model.RoleNavigation,
	"complementary": model.RoleComplementary,
	"main":          model.RoleMain,
	"banner":        model.RoleBanner,
	"contentinfo":   model.RoleContentInfo,
	"search":        model.RoleSearch,
	"form":          model.RoleForm,
}

// Classifier classifies nodes of one parsed document.
//
// Design decision: accessible name resolution needs to look up elements by
// id (aria-labelledby), so the classifier indexes the document's ids once at
// construction instead of rescanning the tree per lookup.
type Classifier struct {
	// ids maps id attribute values to their elements. First occurrence wins,
	// matching how browsers resolve duplicate ids.
	ids map[string]*html.Node
}

// New creates a Classifier for the document rooted at doc.
func New(doc *html.Node) *Classifier {
	c := &Classifier{ids: make(map[string]*html.Node)}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := getAttr(n, "id"); id != "" {
				if _, ok := c.ids[id]; !ok {
					c.ids[id] = n
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return c
}

// ClassifyHeading reports whether n is a heading element and, if so, its
// level. A node is a heading iff its tag is h1 through h6.
func (c *Classifier) ClassifyHeading(n *html.Node) (int, bool) {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0, false
	}

	level := int(n.Data[1] - '0')
	if level < 1 || level > 6 {
		return 0, false
	}
	return level, true
}

// ClassifyLandmark reports whether n is a landmark element and, if so, its
// role. Resolution order:
//  1. an explicit role attribute wins outright;
//  2. otherwise the tag's implicit role, if any;
//  3. a section element is a landmark (role region) only when it carries a
//     non-empty accessible name.
func (c *Classifier) ClassifyLandmark(n *html.Node) (model.Role, bool) {
	if n.Type != html.ElementNode {
		return model.RoleNone, false
	}

	if explicit := strings.TrimSpace(getAttr(n, "role")); explicit != "" {
		if role, ok := explicitRoles[strings.ToLower(explicit)]; ok {
			return role, true
		}
		// An unrecognized explicit role removes the element from landmark
		// consideration, implicit role included.
		return model.RoleNone, false
	}

	if role, ok := implicitRoles[n.Data]; ok {
		return role, true
	}

	if n.Data == "section" && c.AccessibleName(n) != "" {
		return model.RoleRegion, true
	}

	return model.RoleNone, false
}

// AccessibleName resolves the accessible name of n. Resolution order:
//  1. trimmed aria-label, if non-empty;
//  2. aria-labelledby: each whitespace-separated id is looked up in the
//     document, its trimmed text content collected, empties discarded, and
//     the remainder joined with single spaces;
//  3. empty string.
//
// A dangling aria-labelledby reference contributes nothing and is never an
// error.
func (c *Classifier) AccessibleName(n *html.Node) string {
	if label := strings.TrimSpace(getAttr(n, "aria-label")); label != "" {
		return label
	}

	labelledBy := getAttr(n, "aria-labelledby")
	if labelledBy == "" {
		return ""
	}

	fragments := make([]string, 0)
	for _, id := range strings.Fields(labelledBy) {
		ref, ok := c.ids[id]
		if !ok {
			continue
		}
		if text := TextContent(ref); text != "" {
			fragments = append(fragments, text)
		}
	}
	return strings.Join(fragments, " ")
}

// TextContent returns the trimmed, whitespace-collapsed text content of n
// and its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
