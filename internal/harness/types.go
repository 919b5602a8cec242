package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if every expectation in the scenario holds.
	Pass bool `json:"pass"`

	// Tokens is the classified token stream rendered as "Kind:text".
	Tokens []string `json:"tokens"`

	// Tree is ast.Format of the accepted statement, empty when rejected.
	Tree string `json:"tree,omitempty"`

	// Nodes counts tree nodes by type name ("Query", "Join", ...).
	Nodes map[string]int `json:"nodes,omitempty"`

	// Failure describes why the statement was rejected, nil when accepted.
	Failure *Failure `json:"failure,omitempty"`

	// Errors contains failed expectations.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// Failure is the rejection reported for a query.
type Failure struct {
	Code     string `json:"code"`
	Position *int   `json:"position,omitempty"`
	Message  string `json:"message"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Tokens: []string{},
		Nodes:  make(map[string]int),
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
