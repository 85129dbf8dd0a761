package ansi

// Reserved words may not appear as naked identifiers; they bound clauses
// and aliases during matching. Unreserved words parse as identifiers where
// no keyword rule claims them first.
var reservedKeywords = []string{
	"ALL",
	"AND",
	"AS",
	"BETWEEN",
	"BY",
	"CASE",
	"CAST",
	"CREATE",
	"CROSS",
	"DISTINCT",
	"ELSE",
	"END",
	"EXISTS",
	"FALSE",
	"FROM",
	"FULL",
	"GROUP",
	"HAVING",
	"IF",
	"IN",
	"INNER",
	"IS",
	"JOIN",
	"LEFT",
	"LIKE",
	"LIMIT",
	"NOT",
	"NULL",
	"OFFSET",
	"ON",
	"OR",
	"ORDER",
	"OUTER",
	"RIGHT",
	"SELECT",
	"TABLE",
	"THEN",
	"TRUE",
	"UNION",
	"USING",
	"WHEN",
	"WHERE",
}

var unreservedKeywords = []string{
	"ASC",
	"DESC",
	"KEY",
	"PRIMARY",
	"UNIQUE",
}
