package scripts

import (
	"strconv"

	"go.starlark.net/syntax"
)

const (
	lineHookName = "__line__"
	callHookName = "__call__"
)

// instrument inserts a call hook at the start of the module and of every def body,
// and a line hook before every statement. Loop bodies start with a line hook for
// the loop header so each iteration reports it again.
func instrument(f *syntax.File) {
	f.Stmts = instrumentBody(f.Stmts, 0)
}

func instrumentBody(stmts []syntax.Stmt, headerLine int32) []syntax.Stmt {
	if len(stmts) == 0 {
		return stmts
	}

	ret := make([]syntax.Stmt, 0, len(stmts)*2+2)

	// docstring stays first
	if isDocString(stmts[0]) && headerLine == 0 {
		ret = append(ret, stmts[0])
		stmts = stmts[1:]
		if len(stmts) == 0 {
			return ret
		}
	}

	start := syntax.Start(stmts[0])
	if headerLine == 0 {
		ret = append(ret, hookStmt(callHookName, start))
	} else {
		ret = append(ret, hookStmt(lineHookName, start, lineLiteral(start, headerLine)))
	}

	return append(ret, instrumentStmts(stmts)...)
}

func instrumentStmts(stmts []syntax.Stmt) []syntax.Stmt {
	ret := make([]syntax.Stmt, 0, len(stmts)*2)
	for _, stmt := range stmts {
		start := syntax.Start(stmt)
		ret = append(ret, hookStmt(lineHookName, start, lineLiteral(start, start.Line)))

		switch stmt := stmt.(type) {
		case *syntax.DefStmt:
			stmt.Body = instrumentBody(stmt.Body, 0)
		case *syntax.IfStmt:
			stmt.True = instrumentStmts(stmt.True)
			if stmt.False != nil {
				stmt.False = instrumentStmts(stmt.False)
			}
		case *syntax.ForStmt:
			stmt.Body = instrumentBody(stmt.Body, start.Line)
		case *syntax.WhileStmt:
			stmt.Body = instrumentBody(stmt.Body, start.Line)
		}

		ret = append(ret, stmt)
	}
	return ret
}

func isDocString(stmt syntax.Stmt) bool {
	expr, ok := stmt.(*syntax.ExprStmt)
	if !ok {
		return false
	}
	lit, ok := expr.X.(*syntax.Literal)
	return ok && lit.Token == syntax.STRING
}

func hookStmt(name string, pos syntax.Position, args ...syntax.Expr) *syntax.ExprStmt {
	return &syntax.ExprStmt{
		X: &syntax.CallExpr{
			Fn: &syntax.Ident{
				NamePos: pos,
				Name:    name,
			},
			Lparen: pos,
			Args:   args,
			Rparen: pos,
		},
	}
}

func lineLiteral(pos syntax.Position, line int32) *syntax.Literal {
	return &syntax.Literal{
		Token:    syntax.INT,
		TokenPos: pos,
		Raw:      strconv.Itoa(int(line)),
		Value:    int64(line),
	}
}
