package sqlast

// WhereClause is a predicate tree used by WHERE, HAVING and join conditions.
type WhereClause struct {
	Conditions []Condition
	Groups     []*WhereClause
	Operator   string // "AND" or "OR"
	IsNot      bool
}

// Condition compares Left with Value. Value may be an Expr, a []interface{}
// for IN lists, or any other Go value, which is bound as a parameter.
type Condition struct {
	Left     Expr
	Operator string // "=", "!=", "<>", ">", "<", ">=", "<=", "LIKE", "NOT LIKE", "IN", "NOT IN", "IS NULL", "IS NOT NULL"
	Value    interface{}
}

// NewWhereClause creates an empty AND clause.
func NewWhereClause() *WhereClause {
	return &WhereClause{Operator: "AND"}
}

// Where builds an AND clause from conditions.
func Where(conds ...Condition) *WhereClause {
	w := NewWhereClause()
	w.Conditions = append(w.Conditions, conds...)
	return w
}

// Eq is shorthand for left = value.
func Eq(left Expr, value interface{}) Condition {
	return Condition{Left: left, Operator: "=", Value: value}
}

// AddCondition adds a condition to the clause.
func (w *WhereClause) AddCondition(c Condition) {
	w.Conditions = append(w.Conditions, c)
}

// AddGroup adds a nested clause.
func (w *WhereClause) AddGroup(g *WhereClause) {
	w.Groups = append(w.Groups, g)
}

// IsEmpty returns true if the clause has nothing to render.
func (w *WhereClause) IsEmpty() bool {
	return w == nil || (len(w.Conditions) == 0 && len(w.Groups) == 0)
}
