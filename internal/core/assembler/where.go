package assembler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/sqlast"
)

// where renders a predicate tree. Nested groups are parenthesised and NOT
// applies to the whole clause.
func (r *renderer) where(w *sqlast.WhereClause, flags Flags) (string, error) {
	if w.IsEmpty() {
		return "", nil
	}

	var parts []string
	for i, cond := range w.Conditions {
		s, err := r.condition(cond, flags)
		if err != nil {
			return "", fmt.Errorf("condition %d: %w", i, err)
		}
		if s != "" {
			parts = append(parts, s)
		}
	}

	for _, group := range w.Groups {
		s, err := r.where(group, flags)
		if err != nil {
			return "", err
		}
		if s != "" {
			parts = append(parts, "("+s+")")
		}
	}

	if len(parts) == 0 {
		return "", nil
	}

	op := "AND"
	if strings.EqualFold(w.Operator, "OR") {
		op = "OR"
	}

	result := strings.Join(parts, " "+op+" ")
	if w.IsNot {
		result = "NOT (" + result + ")"
	}
	return result, nil
}

// condition renders a single comparison. An empty IN list matches no rows
// and an empty NOT IN list matches every row.
func (r *renderer) condition(c sqlast.Condition, flags Flags) (string, error) {
	left, err := r.expr(c.Left, flags)
	if err != nil {
		return "", err
	}

	op := strings.ToUpper(strings.TrimSpace(c.Operator))
	switch op {
	case "=", "!=", "<>", ">", "<", ">=", "<=", "LIKE", "NOT LIKE":
		right, err := r.operand(c.Value, flags)
		if err != nil {
			return "", err
		}
		return left + " " + op + " " + right, nil

	case "IN", "NOT IN":
		if sub, ok := c.Value.(*sqlast.Select); ok {
			s, err := r.expr(sub, flags)
			if err != nil {
				return "", err
			}
			return left + " " + op + " " + s, nil
		}
		values, ok := c.Value.([]interface{})
		if !ok {
			return "", malformed("%s expects a list or sub-select, got %T", op, c.Value)
		}
		if len(values) == 0 {
			if op == "IN" {
				return "1=0", nil
			}
			return "1=1", nil
		}
		items := make([]string, len(values))
		for i, v := range values {
			if items[i], err = r.operand(v, flags); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("%s %s (%s)", left, op, strings.Join(items, ", ")), nil

	case "IS NULL", "IS NOT NULL":
		return left + " " + op, nil

	default:
		return "", malformed("unsupported operator %q", c.Operator)
	}
}

// operand renders expressions in place and binds everything else.
func (r *renderer) operand(v interface{}, flags Flags) (string, error) {
	if e, ok := v.(sqlast.Expr); ok {
		return r.expr(e, flags)
	}
	return r.bind(v), nil
}
