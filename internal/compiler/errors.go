package compiler

import "fmt"

// Validation error codes (E100-E199).
const (
	ErrNoItems          = "E100" // catalog has no items
	ErrDuplicateItem    = "E101" // duplicate item name
	ErrDuplicateRule    = "E102" // duplicate rule name
	ErrRuleNameEmpty    = "E103" // rule has no name
	ErrNegativeCost     = "E104" // rule cost is negative
	ErrUnknownItem      = "E105" // reference to undeclared item
	ErrBadQuantity      = "E106" // non-positive consume/produce quantity
	ErrNoRecipes        = "E107" // spec declares no recipes
	ErrGoalUnreachable  = "E108" // goal item never produced nor initially held
	ErrUnknownToolItem  = "E109" // tool tier references undeclared item
	ErrEmptyToolClass   = "E110" // tool class has no tiers
)

// CompileError reports a malformed rule or goal, detected before any search
// runs. A missing item lookup during a hot precondition check must never
// occur, so compilation fails fast rather than ignoring the field.
type CompileError struct {
	Rule    string // rule name, empty for goal/catalog errors
	Field   string // "requires", "consumes", "produces", "cost", "goal", ...
	Message string
}

func (e *CompileError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("rule %q: %s: %s", e.Rule, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is a single finding from catalog-wide validation.
// Unlike CompileError it is collected, not fail-fast, so a validate run
// reports everything wrong with a spec at once.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}
