// Package types maps Ingres catalog type identifiers onto universal SQL
// types and display sizes.
package types

// Code is an Ingres type identifier as stored in iicolumns.column_ingdatatype
// and the procedure catalogs. Nullable columns carry the negated code.
type Code int

// Ingres type identifiers.
const (
	Unspecified         Code = -1
	Date                Code = 3
	ANSIDate            Code = 4
	Money               Code = 5
	TimeWithoutTZ       Code = 6
	TimeWithTZ          Code = 7
	TimeLocalTZ         Code = 8
	TimestampWithoutTZ  Code = 9
	Decimal             Code = 10
	LogicalKey          Code = 11
	TableKey            Code = 12
	TimestampWithTZ     Code = 18
	TimestampLocalTZ    Code = 19
	Char                Code = 20
	Varchar             Code = 21
	LongVarchar         Code = 22
	Byte                Code = 23
	VarByte             Code = 24
	LongByte            Code = 25
	NChar               Code = 26
	NVarchar            Code = 27
	LongNVarchar        Code = 28
	Integer             Code = 30
	Float               Code = 31
	C                   Code = 32
	IntervalYearToMonth Code = 33
	IntervalDayToSecond Code = 34
	Text                Code = 37
	Boolean             Code = 38
	LongText            Code = 41
)

var allCodes = []Code{
	Date, ANSIDate, Money, TimeWithoutTZ, TimeWithTZ, TimeLocalTZ,
	TimestampWithoutTZ, Decimal, LogicalKey, TableKey, TimestampWithTZ,
	TimestampLocalTZ, Char, Varchar, LongVarchar, Byte, VarByte, LongByte,
	NChar, NVarchar, LongNVarchar, Integer, Float, C, IntervalYearToMonth,
	IntervalDayToSecond, Text, Boolean, LongText,
}

// AllCodes returns every declared Ingres type identifier.
func AllCodes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes)
	return out
}

// Normalize folds the nullable (negated) form of a code back onto the
// canonical one. Unspecified is left alone.
func Normalize(c Code) Code {
	if c == Unspecified {
		return c
	}
	if c < 0 {
		return -c
	}
	return c
}
