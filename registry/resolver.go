package registry

import (
	"strings"

	"github.com/unkn0wn-root/toon"
)

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// ensureLoadedAndAcyclic walks the Strong-reference closure of root using
// an explicit-stack, three-color depth-first search (white/gray/black),
// loading any missing Strong target exactly once via loader and skipping
// any missing Weak target without consulting loader. A back-edge onto a
// node still in the "visiting" (gray) state is reported as a
// CircularReferenceError naming the cycle path.
func ensureLoadedAndAcyclic(r *TokenRegistry, root toon.TokenId, loader Loader) error {
	state := make(map[toon.TokenId]visitState)
	path := make([]toon.TokenId, 0, 8)

	var walk func(id toon.TokenId) error
	walk = func(id toon.TokenId) error {
		switch state[id] {
		case visiting:
			return &toon.CircularReferenceError{Path: cyclePath(path, id)}
		case visited:
			return nil
		}

		token, ok, err := r.ResolveRefOrLoad(toon.NewRef(id), loader)
		if err != nil {
			return err
		}
		if !ok {
			// The lookup above uses a Strong reference, so a miss is
			// returned as NotFoundError and ok is never false here; a
			// missing Weak target is skipped by the caller before walk
			// is entered.
			state[id] = visited
			return nil
		}

		state[id] = visiting
		path = append(path, id)

		refs := collectRefs(token.Value())
		for _, ref := range refs {
			if ref.Strength() == toon.Weak {
				if _, cached := r.Get(ref.ID()); !cached {
					continue
				}
			}
			if err := walk(ref.ID()); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		state[id] = visited
		return nil
	}

	return walk(root)
}

// cyclePath returns the entire current DFS stack, in push order, followed
// by back once more to close the loop — the full stack, not merely the
// suffix from back's first occurrence (spec.md §4.5: "Cycle reports list
// identities in the order they were pushed; the closing identity is
// appended once").
func cyclePath(path []toon.TokenId, back toon.TokenId) []toon.TokenId {
	out := make([]toon.TokenId, 0, len(path)+1)
	out = append(out, path...)
	out = append(out, back)
	return out
}

// collectRefs returns every TokenRef directly reachable by walking value
// (Ref leaves, and recursively into Array/Object structure).
func collectRefs(value toon.Value) []toon.TokenRef {
	var out []toon.TokenRef
	collectRefsInto(value, &out)
	return out
}

func collectRefsInto(value toon.Value, out *[]toon.TokenRef) {
	switch value.Kind() {
	case toon.KindRef:
		ref, _ := value.AsRef()
		*out = append(*out, ref)
	case toon.KindArray:
		items, _ := value.AsArray()
		for _, item := range items {
			collectRefsInto(item, out)
		}
	case toon.KindObject:
		fields, _ := value.AsObject()
		for _, field := range fields {
			collectRefsInto(field, out)
		}
	}
}

// describeCycle renders a cycle path for logging.
func describeCycle(path []toon.TokenId) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}
