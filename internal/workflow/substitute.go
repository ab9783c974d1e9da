package workflow

import "strings"

// instantiate binds a workflow template to a concrete entity by substituting
// the {entity}/{Entity}/{entities} placeholder tokens. The substitution is an
// explicit tree-walk over string-valued fields; non-string config values pass
// through untouched, so no type coercion can occur.
func instantiate(tmpl InferredWorkflow, e Entity) InferredWorkflow {
	r := strings.NewReplacer(
		"{entity}", strings.ToLower(e.Name),
		"{Entity}", e.Name,
		"{entities}", strings.ToLower(e.Plural()),
		"{entityId}", e.ID,
	)

	out := tmpl
	out.ID = r.Replace(tmpl.ID)
	out.Name = r.Replace(tmpl.Name)
	out.Description = r.Replace(tmpl.Description)

	out.Trigger = tmpl.Trigger
	out.Trigger.ComponentID = r.Replace(tmpl.Trigger.ComponentID)
	out.Trigger.EntityID = r.Replace(tmpl.Trigger.EntityID)
	out.Trigger.Condition = r.Replace(tmpl.Trigger.Condition)

	out.Steps = make([]Step, len(tmpl.Steps))
	for i, step := range tmpl.Steps {
		out.Steps[i] = Step{Action: step.Action, Config: substituteValue(step.Config, r).(map[string]any)}
	}

	if len(tmpl.Conditions) > 0 {
		out.Conditions = make([]Condition, len(tmpl.Conditions))
		for i, cond := range tmpl.Conditions {
			out.Conditions[i] = Condition{
				Field:    r.Replace(cond.Field),
				Operator: cond.Operator,
				Value:    substituteValue(cond.Value, r),
				ThenStep: r.Replace(cond.ThenStep),
			}
		}
	}

	return out
}

// substituteValue walks nested config values, substituting in strings only.
func substituteValue(v any, r *strings.Replacer) any {
	switch val := v.(type) {
	case string:
		return r.Replace(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = substituteValue(inner, r)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = substituteValue(inner, r)
		}
		return out
	default:
		return v
	}
}
