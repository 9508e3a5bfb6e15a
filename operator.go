package gopaginate

// Operator defines a comparison operator for filtering by column.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorEq || o == OperatorGTE || o == OperatorLTE || o == OperatorGT || o == OperatorLT
}

const (
	OperatorEq  Operator = "="
	OperatorGT  Operator = ">"
	OperatorGTE Operator = ">="
	OperatorLT  Operator = "<"
	OperatorLTE Operator = "<="
)
