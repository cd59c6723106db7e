package expr

import (
	"fmt"
	"strings"

	"github.com/jacoelho/jaccs/internal/dots"
	"github.com/theory/jsonpath"
)

func isJSONPath(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "$")
}

func compileJSONPath(text string) (*jsonpath.Path, error) {
	path, err := jsonpath.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, expressionError("invalid JSONPath %q: %v", text, err)
	}
	return path, nil
}

// selectFirst returns the first node selected by path. An empty selection
// counts as a missing key so defaults apply to JSONPath queries too.
func selectFirst(path *jsonpath.Path, root any) (any, error) {
	nodes := path.Select(root)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s selected nothing", dots.ErrMissingKey, path)
	}
	return nodes[0], nil
}
