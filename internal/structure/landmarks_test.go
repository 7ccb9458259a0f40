package structure

import (
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/crinis/mindfula11y-sub001/internal/classify"
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// collectLandmarks parses markup and returns its classified landmarks.
func collectLandmarks(t *testing.T, markup string) []classify.Landmark {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse markup: %v", err)
	}
	_, landmarks := classify.New(doc).Collect(doc, slog.Default())
	return landmarks
}

// TestBuildLandmarkTree tests containment-based landmark nesting.
func TestBuildLandmarkTree(t *testing.T) {
	t.Parallel()

	t.Run("nested landmark attaches to its landmark ancestor", func(t *testing.T) {
		t.Parallel()

		roots := BuildLandmarkTree(collectLandmarks(t, `
			<main>
				<nav aria-label="Toc">x</nav>
			</main>`))

		if len(roots) != 1 {
			t.Fatalf("expected 1 root, got %d", len(roots))
		}
		if roots[0].Role != model.RoleMain {
			t.Errorf("expected main root, got %q", roots[0].Role)
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].Role != model.RoleNavigation {
			t.Errorf("expected nav nested under main, got %+v", roots[0].Children)
		}
	})

	t.Run("non-landmark ancestors are skipped on the way up", func(t *testing.T) {
		t.Parallel()

		roots := BuildLandmarkTree(collectLandmarks(t, `
			<main>
				<div><div>
					<aside>x</aside>
				</div></div>
			</main>`))

		if len(roots) != 1 {
			t.Fatalf("expected 1 root, got %d", len(roots))
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].Role != model.RoleComplementary {
			t.Errorf("expected aside nested under main despite divs in between")
		}
	})

	t.Run("siblings keep document order", func(t *testing.T) {
		t.Parallel()

		roots := BuildLandmarkTree(collectLandmarks(t, `
			<header>x</header>
			<main>y</main>
			<footer>z</footer>`))

		if len(roots) != 3 {
			t.Fatalf("expected 3 roots, got %d", len(roots))
		}
		want := []model.Role{model.RoleBanner, model.RoleMain, model.RoleContentInfo}
		for i, role := range want {
			if roots[i].Role != role {
				t.Errorf("root %d = %q, want %q", i, roots[i].Role, role)
			}
		}
	})

	t.Run("unclassified wrapper does not become a parent", func(t *testing.T) {
		t.Parallel()

		// The nav carries an unrecognized explicit role, so it is no landmark
		// at all and the inner form attaches to the outer main instead.
		roots := BuildLandmarkTree(collectLandmarks(t, `
			<main>
				<nav role="presentation">
					<form>x</form>
				</nav>
			</main>`))

		if len(roots) != 1 {
			t.Fatalf("expected 1 root, got %d", len(roots))
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].Role != model.RoleForm {
			t.Errorf("expected form directly under main, got %+v", roots[0].Children)
		}
	})

	t.Run("empty input yields empty forest", func(t *testing.T) {
		t.Parallel()

		roots := BuildLandmarkTree(nil)
		if len(roots) != 0 {
			t.Errorf("expected empty forest, got %d roots", len(roots))
		}
	})
}
