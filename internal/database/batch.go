package database

import (
	"context"
	"fmt"
	"strings"
)

// AtomicBatch accumulates statements and executes them as a single
// SurrealDB transaction. Variables are namespaced per statement
// ($name -> $s1_name) so statements from different sources cannot
// collide. All statements succeed or fail together.
//
//	batch := database.NewAtomicBatch()
//	batch.Add("CREATE service CONTENT { name: $name }", vars1)
//	batch.Add("CREATE service CONTENT { name: $name }", vars2)
//	err := batch.Execute(ctx, db)
type AtomicBatch struct {
	statements []string
	vars       map[string]interface{}
	counter    int
}

// NewAtomicBatch creates an empty batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add appends a statement to the batch, namespacing its variables
func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.counter++
	for name, value := range vars {
		scoped := fmt.Sprintf("s%d_%s", ab.counter, name)
		query = strings.ReplaceAll(query, "$"+name, "$"+scoped)
		ab.vars[scoped] = value
	}
	ab.statements = append(ab.statements, strings.TrimRight(strings.TrimSpace(query), ";"))
	return ab
}

// Len returns the number of statements in the batch
func (ab *AtomicBatch) Len() int {
	return len(ab.statements)
}

// Execute runs all statements wrapped in BEGIN/COMMIT TRANSACTION.
// An empty batch is a no-op.
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(ab.statements) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range ab.statements {
		sb.WriteString(stmt)
		sb.WriteString(";\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	if err := db.Execute(ctx, sb.String(), ab.vars); err != nil {
		return fmt.Errorf("atomic batch of %d statements: %w", len(ab.statements), err)
	}
	return nil
}
