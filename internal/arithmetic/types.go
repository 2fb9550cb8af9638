package arithmetic

// OperandsRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type OperandsRequest struct {
	A *float64 `json:"a" validate:"required"`
	B *float64 `json:"b" validate:"required"`
}

// ChainStepRequest describes a single step in a chained calculation.
type ChainStepRequest struct {
	Op    string   `json:"op" validate:"required,oneof=add subtract multiply divide"`
	Value *float64 `json:"value" validate:"required"`
}

// ChainRequest is the JSON body for POST /arithmetic/chain.
type ChainRequest struct {
	Initial *float64           `json:"initial" validate:"required"`
	Steps   []ChainStepRequest `json:"steps" validate:"required,min=1,dive"`
}

// ChainResult is the result of POST /arithmetic/chain.
type ChainResult struct {
	Initial float64      `json:"initial"`
	Steps   []StepResult `json:"steps"`
	Result  float64      `json:"result"`
}

// StepResult records one executed step.
type StepResult struct {
	Op     Operator `json:"op"`
	Value  float64  `json:"value"`
	Result float64  `json:"result"`
}

func (r ChainRequest) steps() []Step {
	out := make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = Step{Op: Operator(s.Op), Value: *s.Value}
	}
	return out
}
