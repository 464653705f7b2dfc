package types

// SQLType is an engine-independent SQL type. Values follow the JDBC
// java.sql.Types numbering so metadata can be exchanged with tools that
// speak it.
type SQLType int

// Universal SQL types.
const (
	SQLUnknown       SQLType = 0
	SQLTinyInt       SQLType = -6
	SQLSmallInt      SQLType = 5
	SQLInteger       SQLType = 4
	SQLBigInt        SQLType = -5
	SQLReal          SQLType = 7
	SQLDouble        SQLType = 8
	SQLDecimal       SQLType = 3
	SQLChar          SQLType = 1
	SQLVarchar       SQLType = 12
	SQLLongVarchar   SQLType = -1
	SQLBinary        SQLType = -2
	SQLVarBinary     SQLType = -3
	SQLLongVarBinary SQLType = -4
	SQLNChar         SQLType = -15
	SQLNVarchar      SQLType = -9
	SQLLongNVarchar  SQLType = -16
	SQLBoolean       SQLType = 16
	SQLDate          SQLType = 91
	SQLTime          SQLType = 92
	SQLTimestamp     SQLType = 93
	SQLBlob          SQLType = 2004
	SQLClob          SQLType = 2005
)

var sqlTypeNames = map[SQLType]string{
	SQLUnknown:       "UNKNOWN",
	SQLTinyInt:       "TINYINT",
	SQLSmallInt:      "SMALLINT",
	SQLInteger:       "INTEGER",
	SQLBigInt:        "BIGINT",
	SQLReal:          "REAL",
	SQLDouble:        "DOUBLE",
	SQLDecimal:       "DECIMAL",
	SQLChar:          "CHAR",
	SQLVarchar:       "VARCHAR",
	SQLLongVarchar:   "LONGVARCHAR",
	SQLBinary:        "BINARY",
	SQLVarBinary:     "VARBINARY",
	SQLLongVarBinary: "LONGVARBINARY",
	SQLNChar:         "NCHAR",
	SQLNVarchar:      "NVARCHAR",
	SQLLongNVarchar:  "LONGNVARCHAR",
	SQLBoolean:       "BOOLEAN",
	SQLDate:          "DATE",
	SQLTime:          "TIME",
	SQLTimestamp:     "TIMESTAMP",
	SQLBlob:          "BLOB",
	SQLClob:          "CLOB",
}

func (t SQLType) String() string {
	if name, ok := sqlTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
