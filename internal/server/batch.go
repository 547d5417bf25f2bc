package server

import (
	"context"
	"fmt"
)

// DoResult is the output of a batch.
type DoResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Action    string       `yaml:"action"          json:"action"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// Step is one entry of a batch: a step type and its parameters.
type Step struct {
	Action string
	Params map[string]interface{}
}

// ParseSteps converts raw step objects of the form {action: {params}} into
// Steps. Each object must hold exactly one key.
func ParseSteps(raw []map[string]interface{}) ([]Step, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided")
	}
	steps := make([]Step, 0, len(raw))
	for i, obj := range raw {
		if len(obj) != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one action key, got %d", i+1, len(obj))
		}
		for action, v := range obj {
			var params map[string]interface{}
			switch p := v.(type) {
			case nil:
				params = map[string]interface{}{}
			case map[string]interface{}:
				params = p
			default:
				return nil, fmt.Errorf("step %d: parameters of %q must be an object", i+1, action)
			}
			steps = append(steps, Step{Action: action, Params: params})
		}
	}
	return steps, nil
}

// RunSteps executes steps in order. With stopOnError the first failure ends
// the batch.
func (e *Executor) RunSteps(ctx context.Context, steps []Step, stopOnError bool) DoResult {
	res := DoResult{
		OK:      true,
		Action:  "do",
		Steps:   len(steps),
		Results: make([]StepResult, 0, len(steps)),
	}
	for i, step := range steps {
		r, err := e.Execute(ctx, step.Action, step.Params)
		r.Step = i + 1
		if err != nil {
			r.Error = err.Error()
			res.Results = append(res.Results, r)
			res.OK = false
			res.Error = fmt.Sprintf("step %d: %s", i+1, err)
			if stopOnError {
				break
			}
			continue
		}
		r.OK = true
		res.Completed++
		res.Results = append(res.Results, r)
	}
	return res
}
