package nsid

import (
	"fmt"

	"github.com/robert-malhotra/go-nsid/hstore"
)

// Match is a dataset found by name.
type Match struct {
	Dataset *hstore.Dataset
	IsMain  bool
}

func containerRoot(container any) (*hstore.Group, error) {
	switch c := container.(type) {
	case *hstore.File:
		if c != nil {
			return c.Root(), nil
		}
	case *hstore.Group:
		if c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: container must be a file or group, got %s", ErrType, describe(container))
}

// FindMain returns every Main dataset under container, which must be an
// *hstore.File or *hstore.Group, in walk order.
func FindMain(container any, opts ...Option) ([]*hstore.Dataset, error) {
	g, err := containerRoot(container)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	if o.logger != nil {
		o.logger.Debug("searching for main datasets", "group", g.Path())
	}

	var found []*hstore.Dataset
	err = hstore.Walk(g, func(p string, n hstore.Node, err error) error {
		if err != nil {
			return fmt.Errorf("visiting %s: %w", p, err)
		}
		d, ok := hstore.AsDataset(n)
		if !ok {
			return nil
		}
		if IsMain(d, opts...) {
			found = append(found, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByName returns every dataset under container named name, Main or
// not, in walk order.
func FindByName(container any, name string) ([]Match, error) {
	g, err := containerRoot(container)
	if err != nil {
		return nil, err
	}

	var found []Match
	err = hstore.Walk(g, func(p string, n hstore.Node, err error) error {
		if err != nil {
			return fmt.Errorf("visiting %s: %w", p, err)
		}
		d, ok := hstore.AsDataset(n)
		if !ok || d.Name() != name {
			return nil
		}
		found = append(found, Match{Dataset: d, IsMain: IsMain(d)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
