package scene

import (
	"fmt"
	"regexp"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/portal2d/physics"
)

const ruleResult = "__present"

var buttonRef = regexp.MustCompile(`\b(pressed|active)\(\s*"([^"]*)"\s*\)`)

// rule decides each tick whether a conditional obstacle is present.
type rule struct {
	obstacle *physics.Obstacle
	when     string
	compiled *tengo.Compiled
}

// compileRule builds a tengo program for the expression. pressed(name)
// reads floor buttons and active(name) reads pedestal buttons.
func compileRule(def RuleDef, obstacle *physics.Obstacle, floor map[string]*FloorButton, pedestal map[string]*PedestalButton) (*rule, error) {
	for _, m := range buttonRef.FindAllStringSubmatch(def.When, -1) {
		switch m[1] {
		case "pressed":
			if _, ok := floor[m[2]]; !ok {
				return nil, fmt.Errorf("rule for %q: unknown floor button %q", def.Obstacle, m[2])
			}
		case "active":
			if _, ok := pedestal[m[2]]; !ok {
				return nil, fmt.Errorf("rule for %q: unknown pedestal button %q", def.Obstacle, m[2])
			}
		}
	}

	script := tengo.NewScript([]byte(ruleResult + " := (" + def.When + ")"))
	_ = script.Add("pressed", &tengo.UserFunction{Name: "pressed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		name, err := buttonName(args)
		if err != nil {
			return nil, err
		}
		b, ok := floor[name]
		if !ok {
			return nil, fmt.Errorf("unknown floor button %q", name)
		}
		return boolObject(b.Pressed()), nil
	}})
	_ = script.Add("active", &tengo.UserFunction{Name: "active", Value: func(args ...tengo.Object) (tengo.Object, error) {
		name, err := buttonName(args)
		if err != nil {
			return nil, err
		}
		b, ok := pedestal[name]
		if !ok {
			return nil, fmt.Errorf("unknown pedestal button %q", name)
		}
		return boolObject(b.Active()), nil
	}})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rule for %q: %w", def.Obstacle, err)
	}

	r := &rule{obstacle: obstacle, when: def.When, compiled: compiled}
	if _, err := r.evaluate(); err != nil {
		return nil, err
	}
	return r, nil
}

// evaluate runs the expression against the current button states.
func (r *rule) evaluate() (bool, error) {
	if err := r.compiled.Run(); err != nil {
		return false, fmt.Errorf("rule for %q: %w", r.obstacle.Name, err)
	}
	v := r.compiled.Get(ruleResult)
	if v.ValueType() != "bool" {
		return false, fmt.Errorf("rule for %q: %q yields %s, not bool", r.obstacle.Name, r.when, v.ValueType())
	}
	return v.Bool(), nil
}

func buttonName(args []tengo.Object) (string, error) {
	if len(args) != 1 {
		return "", tengo.ErrWrongNumArguments
	}
	s, ok := args[0].(*tengo.String)
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
	}
	return s.Value, nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
