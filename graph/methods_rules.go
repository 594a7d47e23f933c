package graph

import (
	"fmt"
	"sort"

	"github.com/graphoid-lang/graphoid/rules"
)

// AddRule attaches spec under severity, applying retro to g's current
// nodes immediately (spec §3.3/§4.5). Returns the rule-violation error
// under RetroEnforce if g's current state does not satisfy spec, or
// ErrFrozen if g is frozen. A rule attached twice under the same name
// replaces the previous instance (its severity/active flag is reset).
func (g *Graph) AddRule(spec rules.Spec, severity rules.Severity, retro rules.Retro) error {
	if g.Frozen() {
		return ErrFrozen
	}
	name := spec.Name()

	g.muRest.Lock()
	if _, exists := g.ruleSet[name]; !exists {
		g.ruleOrder = append(g.ruleOrder, name)
	}
	g.ruleSet[name] = &ruleEntry{spec: spec, severity: severity, active: true}
	g.muRest.Unlock()

	if err := rules.ApplyTransformToExisting(spec, g); err != nil {
		return fmt.Errorf("%w: rule %q: %v", ErrRuleViolation, name, err)
	}

	if err := rules.ApplyRetro(spec, g, retro); err != nil {
		return fmt.Errorf("%w: rule %q: %v", ErrRuleViolation, name, err)
	}
	return nil
}

// WithRuleset attaches every member rule of the named ruleset (spec
// §3.3's tree/dag/binary_tree/bst bundles), each with SeverityError, in
// the ruleset's canonical order, applying retro to each in turn.
func (g *Graph) WithRuleset(name string, retro rules.Retro) error {
	specs, err := rules.Ruleset(name)
	if err != nil {
		return err
	}
	for _, s := range specs {
		if err := g.AddRule(s, rules.SeverityError, retro); err != nil {
			return err
		}
	}
	g.muRest.Lock()
	g.rulesets[name] = true
	g.muRest.Unlock()
	return nil
}

// RemoveRule detaches the named rule. Returns ErrRuleNotFound if absent.
func (g *Graph) RemoveRule(name string) error {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	if _, exists := g.ruleSet[name]; !exists {
		return fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	delete(g.ruleSet, name)
	for i, n := range g.ruleOrder {
		if n == name {
			g.ruleOrder = append(g.ruleOrder[:i], g.ruleOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ClearRules detaches every rule and forgets every applied ruleset.
func (g *Graph) ClearRules() {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	g.ruleSet = map[string]*ruleEntry{}
	g.ruleOrder = nil
	g.rulesets = map[string]bool{}
}

// DisableRule turns off an attached rule without detaching it: it stops
// being checked by validateActive/applyTransforms but reappears active
// if re-enabled. Returns ErrRuleNotFound if absent.
func (g *Graph) DisableRule(name string) error {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	e, ok := g.ruleSet[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	e.active = false
	return nil
}

// EnableRule re-activates a previously disabled rule. Returns
// ErrRuleNotFound if absent.
func (g *Graph) EnableRule(name string) error {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	e, ok := g.ruleSet[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	e.active = true
	return nil
}

// HasRule reports whether name is currently attached (active or not).
func (g *Graph) HasRule(name string) bool {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	_, ok := g.ruleSet[name]
	return ok
}

// HasRuleset reports whether the named ruleset was attached via
// WithRuleset (individually attaching the same rules does not count).
func (g *Graph) HasRuleset(name string) bool {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	return g.rulesets[name]
}

// RuleNames returns every attached rule's canonical name, sorted
// ascending (spec §4.5's "rules() returns a deterministic list").
func (g *Graph) RuleNames() []string {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	instances := make([]rules.Instance, 0, len(g.ruleSet))
	for _, e := range g.ruleSet {
		instances = append(instances, rules.Instance{Spec: e.spec, Severity: e.severity, Active: e.active})
	}
	return rules.SortedNames(instances)
}

// ValidateRules runs every active, SeverityError rule against g's
// current state and returns the first failure (nil if all pass).
func (g *Graph) ValidateRules() error {
	return g.validateActive()
}

// Instances returns every attached rule's Spec/Severity/Active state,
// in attach order. collection.List uses this to carry rule attachments
// across the structural rebuilds its node_i renumbering invariant
// requires on every mutation, since node identity does not survive a
// rebuild but rule attachment should.
func (g *Graph) Instances() []rules.Instance {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	out := make([]rules.Instance, 0, len(g.ruleOrder))
	for _, name := range g.ruleOrder {
		e := g.ruleSet[name]
		out = append(out, rules.Instance{Spec: e.spec, Severity: e.severity, Active: e.active})
	}
	return out
}

// RestoreInstances re-attaches instances onto g verbatim, without
// re-running retroactive policy: the caller is responsible for knowing
// the current node set already satisfies them (true immediately after
// collection.List.rebuild, which renumbers node IDs without changing
// membership).
func (g *Graph) RestoreInstances(instances []rules.Instance) {
	g.muRest.Lock()
	defer g.muRest.Unlock()
	for _, in := range instances {
		name := in.Spec.Name()
		if _, exists := g.ruleSet[name]; !exists {
			g.ruleOrder = append(g.ruleOrder, name)
		}
		g.ruleSet[name] = &ruleEntry{spec: in.Spec, severity: in.Severity, active: in.Active}
	}
}

// activeRulesetNames returns the attached ruleset names, sorted.
func (g *Graph) activeRulesetNames() []string {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	out := make([]string, 0, len(g.rulesets))
	for name := range g.rulesets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
