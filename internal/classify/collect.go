package classify

import (
	"encoding/json"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// Editability hint attributes. The surrounding application precomputes these
// per element; the classifier decodes them and passes them through unchanged.
const (
	attrAvailableLevels = "data-mindfula11y-levels"
	attrAvailableRoles  = "data-mindfula11y-roles"
	attrEditTarget      = "data-mindfula11y-target"
)

// Heading is a classified heading element in document order, the input unit
// for the heading tree builder.
type Heading struct {
	// Level is the heading level, 1 through 6.
	Level int

	// Text is the heading's trimmed text content.
	Text string

	// Hints carries pass-through editability metadata, if any.
	Hints model.EditHints

	// Element is the originating markup node.
	Element *html.Node
}

// Landmark is a classified landmark element in document order, still
// attached to its position in the full document tree so the landmark tree
// builder can resolve containment.
type Landmark struct {
	// Role is the resolved landmark role, never RoleNone.
	Role model.Role

	// AccessibleName is the resolved label, possibly empty.
	AccessibleName string

	// Hints carries pass-through editability metadata, if any.
	Hints model.EditHints

	// Element is the originating markup node.
	Element *html.Node
}

// Collect linearizes the document's heading and landmark elements in
// document order. Non-heading, non-landmark elements are excluded here so
// downstream components never see them.
func (c *Classifier) Collect(doc *html.Node, logger *slog.Logger) ([]Heading, []Landmark) {
	if logger == nil {
		logger = slog.Default()
	}

	headings := make([]Heading, 0)
	landmarks := make([]Landmark, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level, ok := c.ClassifyHeading(n); ok {
				headings = append(headings, Heading{
					Level:   level,
					Text:    TextContent(n),
					Hints:   c.hints(n, logger),
					Element: n,
				})
			} else if role, ok := c.ClassifyLandmark(n); ok {
				landmarks = append(landmarks, Landmark{
					Role:           role,
					AccessibleName: c.AccessibleName(n),
					Hints:          c.hints(n, logger),
					Element:        n,
				})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return headings, landmarks
}

// hints decodes the editability hint attributes of n. Malformed payloads are
// logged at Warn and treated as absent; they never abort the run or surface
// to the end user.
func (c *Classifier) hints(n *html.Node, logger *slog.Logger) model.EditHints {
	var hints model.EditHints

	if raw := getAttr(n, attrAvailableLevels); raw != "" {
		var levels []int
		if err := json.Unmarshal([]byte(raw), &levels); err != nil {
			logger.Warn("ignoring malformed level hints",
				"tag", n.Data,
				"error", err,
			)
		} else {
			hints.AvailableLevels = levels
		}
	}

	if raw := getAttr(n, attrAvailableRoles); raw != "" {
		var roles []model.Role
		if err := json.Unmarshal([]byte(raw), &roles); err != nil {
			logger.Warn("ignoring malformed role hints",
				"tag", n.Data,
				"error", err,
			)
		} else {
			hints.AvailableRoles = roles
		}
	}

	hints.EditTarget = getAttr(n, attrEditTarget)

	return hints
}
