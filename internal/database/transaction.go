package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TxBuilder builds atomic transaction queries with automatic variable
// namespacing, so statements from different sources can both bind $id
// without colliding.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter int
}

// NewTxBuilder creates a new transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add adds a statement to the transaction, namespacing variables to avoid
// collisions
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	// Longest names first so $place never rewrites part of $place_id
	sort.Slice(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	newQuery := query
	for _, varName := range names {
		tb.varCounter++
		newVarName := fmt.Sprintf("v%d_%s", tb.varCounter, varName)

		newQuery = strings.ReplaceAll(newQuery, "$"+varName, "$"+newVarName)
		tb.vars[newVarName] = vars[varName]
	}

	tb.statements = append(tb.statements, newQuery)
}

// Build returns the complete transaction query and merged variables
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// AtomicBatch accumulates statements that must succeed or fail together.
// All statements run as a single BEGIN/COMMIT TRANSACTION block at Execute
// time; there is no isolation between Add calls before that.
type AtomicBatch struct {
	queries []batchQuery
}

type batchQuery struct {
	query string
	vars  map[string]interface{}
}

// NewAtomicBatch creates a new atomic batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		queries: make([]batchQuery, 0),
	}
}

// Add adds a query to the batch
func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.queries = append(ab.queries, batchQuery{query: query, vars: vars})
	return ab
}

// Execute runs all queries as a single transaction
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(ab.queries) == 0 {
		return nil
	}

	tb := NewTxBuilder()
	for _, q := range ab.queries {
		tb.Add(q.query, q.vars)
	}

	query, vars := tb.Build()
	_, err := db.Query(ctx, query, vars)
	return err
}

// Len returns the number of queries in the batch
func (ab *AtomicBatch) Len() int {
	return len(ab.queries)
}
