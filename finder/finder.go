// Package finder discovers the controllers a document is generated from.
//
// Every finder returns controller names in a fixed order. Discovery order
// decides the order of tags and which tag description wins, so finders
// that read from unordered sources sort their output.
package finder

import (
	"context"
	"slices"
	"sort"
	"strings"
)

// Finder yields controller names in processing order.
type Finder interface {
	Find(ctx context.Context) ([]string, error)
}

// Func adapts a function to the Finder interface.
type Func func(ctx context.Context) ([]string, error)

// Find calls f.
func (f Func) Find(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static returns the given names in the given order.
func Static(names ...string) Finder {
	list := slices.Clone(names)
	return Func(func(context.Context) ([]string, error) {
		return slices.Clone(list), nil
	})
}

// Sorted pins the output of f to lexicographic order and drops duplicates.
func Sorted(f Finder) Finder {
	return Func(func(ctx context.Context) ([]string, error) {
		names, err := f.Find(ctx)
		if err != nil {
			return nil, err
		}
		names = slices.Clone(names)
		sort.Strings(names)
		return slices.Compact(names), nil
	})
}

// Lister lists registered controller names. *meta.Catalog satisfies it.
type Lister interface {
	Controllers() []string
}

// Catalog yields the controllers of l that live under one of the given
// package prefixes. Prefixes are scanned in the given order, names within
// one prefix in lexicographic order, and each name is yielded once. With no
// prefixes every controller is yielded.
//
//	finder.Catalog(catalog, "shop/controllers", "shop/admin")
func Catalog(l Lister, prefixes ...string) Finder {
	return Func(func(ctx context.Context) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		all := l.Controllers()
		sort.Strings(all)
		if len(prefixes) == 0 {
			return all, nil
		}

		seen := make(map[string]bool, len(all))
		var names []string
		for _, prefix := range prefixes {
			for _, name := range all {
				if seen[name] || !underPrefix(name, prefix) {
					continue
				}
				seen[name] = true
				names = append(names, name)
			}
		}
		return names, nil
	})
}

// underPrefix reports whether the fully-qualified name belongs to the
// package path prefix or one of its sub-packages.
func underPrefix(name, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return true
	}
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, ".")
}
