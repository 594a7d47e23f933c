package rules

import "github.com/graphoid-lang/graphoid/value"

// TransformGraph is the minimal surface a Spec's Transform needs to
// rewrite already-existing node values when the Spec is attached (spec
// §3.3: a transformation rule's existing records are rewritten always,
// regardless of retroactive policy — retroactive policy governs only
// validation rules).
type TransformGraph interface {
	Graph
	SetNodeValue(id string, v value.Value) error
}

// ApplyTransformToExisting runs spec.Transform over every node
// currently in g and writes back any change. Safe to call for any
// Spec: a validation-only rule inherits the identity Transform from
// Validator, making this a no-op for it.
func ApplyTransformToExisting(spec Spec, g TransformGraph) error {
	for _, id := range g.NodeIDs() {
		v, ok := g.NodeValue(id)
		if !ok {
			continue
		}
		transformed, err := spec.Transform(v)
		if err != nil {
			return err
		}
		if !transformed.Equal(v) {
			if err := g.SetNodeValue(id, transformed); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyRetro runs a rule against a set of already-existing node IDs per
// the selected retroactive policy (spec §3.3, §8.3). It is the shared
// decision function; graph.Graph supplies the node-removal/validation
// hooks since only it knows how to mutate its own storage.
//
// Rewriting existing records for a transformation rule is done by
// ApplyTransformToExisting, regardless of policy; retroactive policy
// only governs validation rules. For a validation rule:
//   - RetroIgnore: attach without checking.
//   - RetroWarn: validate, but never fail attach (caller should log).
//   - RetroEnforce: validate; fail attach if invalid.
//   - RetroClean: deterministically remove nodes until valid. The
//     policy removes, one at a time, the node with the lexicographically
//     largest ID among all remaining nodes, re-checking after each
//     removal, bounded by the total node count to guarantee termination.
//     It does not check whether that node takes part in the violation,
//     so nodes outside the violation can be removed too (spec §9: ":clean" must be deterministic).
type Cleaner interface {
	Graph
	RemoveNode(id string) error
}

// ApplyRetro validates spec against g under policy, invoking remove to
// drop nodes when policy is RetroClean. It returns the final validation
// error (nil on success), except under RetroWarn/RetroIgnore, which
// never return an error.
func ApplyRetro(spec Spec, g Cleaner, policy Retro) error {
	switch policy {
	case RetroIgnore:
		return nil
	case RetroWarn:
		_ = spec.Validate(g)
		return nil
	case RetroEnforce:
		return spec.Validate(g)
	case RetroClean:
		limit := len(g.NodeIDs())
		for i := 0; i <= limit; i++ {
			if err := spec.Validate(g); err == nil {
				return nil
			}
			ids := g.NodeIDs()
			if len(ids) == 0 {
				return nil
			}
			victim := ids[0]
			for _, id := range ids {
				if id > victim {
					victim = id
				}
			}
			if err := g.RemoveNode(victim); err != nil {
				return err
			}
		}
		return spec.Validate(g)
	default:
		return spec.Validate(g)
	}
}
