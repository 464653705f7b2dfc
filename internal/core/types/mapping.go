package types

import "strings"

type namedCode struct {
	name string
	code Code
}

// typeNames is searched in order; the first match wins.
var typeNames = []namedCode{
	{"tinyint", Integer},
	{"smallint", Integer},
	{"integer", Integer},
	{"int", Integer},
	{"bigint", Integer},
	{"real", Float},
	{"float", Float},
	{"double precision", Float},
	{"double p", Float},
	{"decimal", Decimal},
	{"numeric", Decimal},
	{"char", Char},
	{"character", Char},
	{"varchar", Varchar},
	{"long varchar", LongVarchar},
	{"nchar", NChar},
	{"nvarchar", NVarchar},
	{"long nvarchar", LongNVarchar},
	{"byte", Byte},
	{"varbyte", VarByte},
	{"byte varying", VarByte},
	{"long byte", LongByte},
	{"c", C},
	{"text", Text},
	{"money", Money},
	{"boolean", Boolean},
	{"date", Date},
	{"ingresdate", Date},
	{"ansidate", ANSIDate},
	{"time with local time zone", TimeLocalTZ},
	{"time without time zone", TimeWithoutTZ},
	{"time with time zone", TimeWithTZ},
	{"timestamp with local time zone", TimestampLocalTZ},
	{"timestamp without time zone", TimestampWithoutTZ},
	{"timestamp with time zone", TimestampWithTZ},
	{"interval year to month", Varchar},
	{"interval day to second", Varchar},
}

// CodeForName looks up the type identifier for a catalog type name such as
// "varchar" or "TIMESTAMP WITH TIME ZONE".
func CodeForName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, nc := range typeNames {
		if nc.name == name {
			return nc.code, true
		}
	}
	return Unspecified, false
}

// SQLTypeFor converts an Ingres type identifier into a universal SQL type.
// Integer and float sizes depend on the storage length in bytes; any other
// length yields SQLUnknown.
func SQLTypeFor(code Code, length int) SQLType {
	switch code {
	case LongVarchar:
		return SQLLongVarchar
	case Byte:
		return SQLBinary
	case VarByte:
		return SQLVarBinary
	case LongByte:
		return SQLLongVarBinary
	case NVarchar:
		return SQLNVarchar
	case NChar:
		return SQLNChar
	case LongNVarchar:
		return SQLLongNVarchar
	case Char, C:
		return SQLChar
	case Money, Decimal:
		return SQLDecimal
	case Varchar, IntervalYearToMonth, IntervalDayToSecond, Text, LongText:
		return SQLVarchar
	case Boolean:
		return SQLBoolean
	case ANSIDate:
		return SQLDate
	case TimeWithoutTZ, TimeWithTZ, TimeLocalTZ:
		return SQLTime
	case Date, TimestampWithoutTZ, TimestampWithTZ, TimestampLocalTZ:
		return SQLTimestamp
	case Integer:
		switch length {
		case 1:
			return SQLTinyInt
		case 2:
			return SQLSmallInt
		case 4:
			return SQLInteger
		case 8:
			return SQLBigInt
		}
	case Float:
		switch length {
		case 4:
			return SQLReal
		case 8:
			return SQLDouble
		}
	}
	return SQLUnknown
}

// DisplaySize returns the fixed column size reported for a type, or -1 when
// the catalog length should be kept. Money is the only decimal with a fixed
// size.
func DisplaySize(code Code, t SQLType) int {
	switch t {
	case SQLDecimal:
		if code == Money {
			return 14
		}
		return -1
	case SQLVarBinary, SQLBinary, SQLChar, SQLVarchar:
		return -1
	case SQLLongVarBinary, SQLLongVarchar, SQLBoolean, SQLBlob, SQLClob:
		return 0
	case SQLDate:
		return 10
	case SQLTime:
		return 8
	case SQLTimestamp:
		return 29
	case SQLTinyInt:
		return 4
	case SQLSmallInt:
		return 6
	case SQLInteger:
		return 11
	case SQLBigInt:
		return 20
	case SQLReal:
		return 7
	case SQLDouble:
		return 15
	default:
		return -1
	}
}

// Resolve derives the universal type and effective length of a column.
// When code is Unspecified the type name is used instead.
func Resolve(code Code, typeName string, length int) (SQLType, Code, int) {
	code = Normalize(code)
	if code == Unspecified {
		if c, ok := CodeForName(typeName); ok {
			code = c
		}
	}

	t := SQLTypeFor(code, length)
	if size := DisplaySize(code, t); size >= 0 {
		length = size
	}
	return t, code, length
}
