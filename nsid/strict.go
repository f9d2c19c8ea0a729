package nsid

import (
	"fmt"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
)

// ValidateMainDset checks the structural preconditions of a Main dataset.
// With mustBePersisted the candidate must be an *hstore.Dataset, otherwise
// an in-memory *labeled.Array (raw or lazy). In both cases every axis must
// carry a dimension.
func ValidateMainDset(candidate any, mustBePersisted bool) error {
	if mustBePersisted {
		var d *hstore.Dataset
		if n, ok := candidate.(hstore.Node); ok {
			d, _ = hstore.AsDataset(n)
		}
		if d == nil {
			return fmt.Errorf("%w: %s is not a persisted dataset", ErrType, describe(candidate))
		}
		if rank, n := d.Rank(), hstore.NumAttached(d); rank != n {
			return fmt.Errorf("%w: %s has shape %v but %d dimension scales", ErrShape, d.Path(), d.Shape(), n)
		}
		return nil
	}

	a, ok := candidate.(*labeled.Array)
	if !ok || a == nil {
		return fmt.Errorf("%w: %s is not an in-memory array", ErrType, describe(candidate))
	}
	if rank, n := a.Rank(), a.NumDimensions(); rank != n {
		return fmt.Errorf("%w: array has shape %v but %d dimensions", ErrShape, a.Shape, n)
	}
	return nil
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case *hstore.Group:
		if x != nil {
			return "group " + x.Path()
		}
	case *hstore.Dataset:
		if x != nil {
			return "dataset " + x.Path()
		}
	}
	return fmt.Sprintf("%T", v)
}
