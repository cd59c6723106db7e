package source

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jacoelho/jaccs/internal/dots"
	"github.com/jacoelho/jaccs/internal/expr"
)

// Roots selects the values to extract records from inside a document.
// A nil selector makes the document its own single root.
type Roots struct {
	selector *expr.Accessor
}

// NewRoots compiles a roots expression. An empty text selects the document.
func NewRoots(text string) (*Roots, error) {
	if text == "" {
		return &Roots{}, nil
	}

	selector, err := expr.NewAccessor(text)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	return &Roots{selector: selector}, nil
}

// Of returns the roots held by document.
func (r *Roots) Of(document any) (iter.Seq[any], error) {
	if r.selector == nil {
		return slices.Values([]any{document}), nil
	}

	selected, err := r.selector.Evaluate(document)
	if err != nil {
		return nil, fmt.Errorf("roots %s: %w", r.selector, err)
	}

	sequence, ok := selected.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s selected a %s", ErrRootsNotSequence, r.selector, dots.KindOf(selected))
	}
	return slices.Values(sequence), nil
}
