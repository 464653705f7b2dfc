package domain

import "github.com/satishbabariya/ingres-go/internal/core/types"

// ReturnTypeFlavor describes what a stored procedure returns.
type ReturnTypeFlavor int

const (
	// ReturnsVoid means no result.
	ReturnsVoid ReturnTypeFlavor = iota
	// ReturnsType means a single typed value.
	ReturnsType
	// ReturnsResultSet means rows.
	ReturnsResultSet
)

func (f ReturnTypeFlavor) String() string {
	switch f {
	case ReturnsType:
		return "TYPE"
	case ReturnsResultSet:
		return "RESULT_SET"
	default:
		return "VOID"
	}
}

// ParamType is the direction of a procedure parameter.
type ParamType int

const (
	// ParamIn is an input parameter.
	ParamIn ParamType = iota + 1
	// ParamOut is an output parameter.
	ParamOut
	// ParamInOut is both.
	ParamInOut
)

func (p ParamType) String() string {
	switch p {
	case ParamIn:
		return "IN"
	case ParamOut:
		return "OUT"
	case ParamInOut:
		return "IN_OUT"
	default:
		return "UNKNOWN"
	}
}

// Param is a stored procedure parameter.
type Param struct {
	Type     ParamType
	Name     string
	DataType types.SQLType
}

// StoredProcedure describes a database procedure. ReturnType is set only
// when ReturnTypeFlavor is ReturnsType.
type StoredProcedure struct {
	Name             string
	Description      string
	ReturnTypeFlavor ReturnTypeFlavor
	ReturnType       *types.SQLType
	Params           []Param
}
