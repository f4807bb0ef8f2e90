package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
)

// Engine manages the CEL environment and compilation/evaluation of custom
// alert rules. Thread-safe for concurrent evaluation; rule mutations take
// the write lock on the program map.
type Engine struct {
	env      *cel.Env
	store    RuleStore
	cache    RulesCache             // cache for active rules list
	programs map[string]cel.Program // ruleID -> compiled program
	mu       sync.RWMutex
}

// NewEnv builds the CEL environment for measurement expressions. The
// variable vocabulary is fixed: one declared variable per measurement kind.
func NewEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarGlucose, cel.DynType),
		cel.Variable(VarBloodPressure, cel.DynType),
		cel.Variable(VarFood, cel.DynType),
		cel.Variable(VarExercise, cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// NewEngine creates a rules engine over the given store and compiles all of
// its active rules.
func NewEngine(store RuleStore) (*Engine, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, err
	}

	en := &Engine{
		env:      env,
		store:    store,
		cache:    NewInMemoryRulesCache(DefaultCacheConfig()),
		programs: make(map[string]cel.Program),
	}

	if err := en.CompileAllRules(); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	return en, nil
}

// CompileRule compiles a single rule expression to a CEL program. A cost
// limit caps runaway expressions from misconfigured rules.
func (en *Engine) CompileRule(ruleID, expression string) error {
	ast, issues := en.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile error: %w", issues.Err())
	}

	prog, err := en.env.Program(ast, cel.CostLimit(1000000))
	if err != nil {
		return fmt.Errorf("program creation error: %w", err)
	}

	en.mu.Lock()
	en.programs[ruleID] = prog
	en.mu.Unlock()

	return nil
}

// CompileAllRules compiles all active rules from the store and primes the
// active-rules cache.
func (en *Engine) CompileAllRules() error {
	active, err := en.store.ListActive()
	if err != nil {
		return err
	}

	for _, rule := range active {
		if err := en.CompileRule(rule.ID, rule.Expression); err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", rule.ID, err)
		}
	}

	en.cache.Set(active)
	return nil
}

// AddRule validates that the rule compiles, then adds it to the store. If
// the store rejects it the compiled program is removed again.
func (en *Engine) AddRule(r *Rule) error {
	if _, err := en.store.Get(r.ID); err == nil {
		return fmt.Errorf("rule with ID %s already exists", r.ID)
	}
	if _, ok := kindToVar[r.AppliesTo]; !ok {
		return fmt.Errorf("rule %s applies to unknown measurement kind %q", r.ID, r.AppliesTo)
	}

	if err := en.CompileRule(r.ID, r.Expression); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Add(r); err != nil {
		en.mu.Lock()
		delete(en.programs, r.ID)
		en.mu.Unlock()
		return err
	}

	en.cache.Invalidate()
	return nil
}

// UpdateRule validates the new expression, recompiles and updates the store.
func (en *Engine) UpdateRule(r *Rule) error {
	if err := en.CompileRule(r.ID, r.Expression); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Update(r); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// DeleteRule removes a rule from the store and the compiled program map.
func (en *Engine) DeleteRule(ruleID string) error {
	if err := en.store.Delete(ruleID); err != nil {
		return err
	}

	en.mu.Lock()
	delete(en.programs, ruleID)
	en.mu.Unlock()

	en.cache.Invalidate()
	return nil
}

// Rule returns one rule from the backing store.
func (en *Engine) Rule(ruleID string) (*Rule, error) {
	return en.store.Get(ruleID)
}

// ActiveRules returns the active rules, served from the cache when warm.
func (en *Engine) ActiveRules() ([]*Rule, error) {
	if active := en.cache.Get(); active != nil {
		return active, nil
	}
	active, err := en.store.ListActive()
	if err != nil {
		return nil, err
	}
	en.cache.Set(active)
	return active, nil
}

// Evaluate evaluates a single rule against the provided facts. Non-boolean
// results are treated as no match; evaluation errors are captured on the
// result rather than aborting.
func (en *Engine) Evaluate(ruleID string, facts map[string]any) (*EvaluationResult, error) {
	rule, err := en.store.Get(ruleID)
	if err != nil {
		return nil, err
	}

	en.mu.RLock()
	prog, exists := en.programs[ruleID]
	en.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("rule %s is not compiled", ruleID)
	}

	return evalProgram(rule, prog, facts), nil
}

// EvaluateMeasurement runs every active rule whose AppliesTo matches the
// measurement's kind and returns their results. Rules that fail to evaluate
// report the error on their result; evaluation continues past them.
func (en *Engine) EvaluateMeasurement(m health.Measurement) ([]*EvaluationResult, error) {
	active := en.cache.Get()
	if active == nil {
		var err error
		active, err = en.store.ListActive()
		if err != nil {
			return nil, err
		}
		en.cache.Set(active)
	}

	facts := Facts(m)
	kind := m.Kind()

	results := make([]*EvaluationResult, 0, len(active))
	for _, rule := range active {
		if rule.AppliesTo != kind {
			continue
		}

		en.mu.RLock()
		prog, exists := en.programs[rule.ID]
		en.mu.RUnlock()

		if !exists {
			results = append(results, &EvaluationResult{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Error:    fmt.Errorf("rule %s is not compiled", rule.ID),
			})
			continue
		}

		results = append(results, evalProgram(rule, prog, facts))
	}

	return results, nil
}

// Alerts evaluates a measurement and returns only the alerts of matched
// rules, which is what the logging handlers surface to the user.
func (en *Engine) Alerts(m health.Measurement) ([]*health.SOSAlert, error) {
	results, err := en.EvaluateMeasurement(m)
	if err != nil {
		return nil, err
	}

	var alerts []*health.SOSAlert
	for _, res := range results {
		if res.Matched && res.Alert != nil {
			alerts = append(alerts, res.Alert)
		}
	}
	return alerts, nil
}

func evalProgram(rule *Rule, prog cel.Program, facts map[string]any) *EvaluationResult {
	out, _, err := prog.Eval(facts)
	if err != nil {
		return &EvaluationResult{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Error:    err,
		}
	}

	matched := false
	if boolVal, ok := out.Value().(bool); ok {
		matched = boolVal
	}

	result := &EvaluationResult{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Matched:  matched,
	}
	if matched {
		result.Alert = rule.Alert()
	}
	return result
}
