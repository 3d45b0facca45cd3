package parser

// Grammar structs for the participle parser.
// These define the kernel file grammar using struct tags.

type kernelGrammar struct {
	Stmts []*stmtGrammar `parser:"@@*"`
}

type stmtGrammar struct {
	Dim *dimGrammar `parser:"( @@"`
	Eq  *eqGrammar  `parser:"| @@ )"`
}

type dimGrammar struct {
	Time bool   `parser:"'dim' @'time'?"`
	Name string `parser:"@Ident"`
}

type eqGrammar struct {
	LHS *targetGrammar `parser:"@@ '='"`
	RHS *addGrammar    `parser:"@@"`
}

type targetGrammar struct {
	Name    string        `parser:"@Ident"`
	Indices []*addGrammar `parser:"('[' @@ (',' @@)* ']')?"`
}

// Expression grammar (operator precedence: + - < * / < unary - < ^)

type addGrammar struct {
	Left  *mulGrammar `parser:"@@"`
	Right []*addRHS   `parser:"@@*"`
}

type addRHS struct {
	Op   string      `parser:"@('+' | '-')"`
	Term *mulGrammar `parser:"@@"`
}

type mulGrammar struct {
	Left  *unaryGrammar `parser:"@@"`
	Right []*mulRHS     `parser:"@@*"`
}

type mulRHS struct {
	Op   string        `parser:"@('*' | '/')"`
	Term *unaryGrammar `parser:"@@"`
}

type unaryGrammar struct {
	Neg *unaryGrammar `parser:"'-' @@"`
	Pow *powGrammar   `parser:"| @@"`
}

type powGrammar struct {
	Base *primaryGrammar `parser:"@@"`
	Exp  *unaryGrammar   `parser:"('^' @@)?"`
}

type primaryGrammar struct {
	Call    *callGrammar    `parser:"( @@"`
	Indexed *indexedGrammar `parser:"| @@"`
	Ident   *string         `parser:"| @Ident"`
	Int     *int64          `parser:"| @Int"`
	Paren   *addGrammar     `parser:"| '(' @@ ')' )"`
}

type callGrammar struct {
	Name string        `parser:"@Ident '('"`
	Args []*addGrammar `parser:"(@@ (',' @@)*)? ')'"`
}

type indexedGrammar struct {
	Base    string        `parser:"@Ident '['"`
	Indices []*addGrammar `parser:"@@ (',' @@)* ']'"`
}
