package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SchemaRepository introspects information_schema and formats the result as
// the plain-text schema context fed to query synthesis.
type SchemaRepository struct {
	db *sql.DB
}

func NewSchemaRepository(db *sql.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Describe lists every public table with its columns, primary keys, foreign
// keys and nullability, one "Table:" block per table.
func (r *SchemaRepository) Describe(ctx context.Context) (string, error) {
	const tablesQ = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public'
ORDER BY table_name;`

	rows, err := r.db.QueryContext(ctx, tablesQ)
	if err != nil {
		return "", err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return "", err
		}
		tables = append(tables, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, table := range tables {
		if err := r.describeTable(ctx, &sb, table); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (r *SchemaRepository) describeTable(ctx context.Context, sb *strings.Builder, table string) error {
	const columnsQ = `
SELECT column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = $1
ORDER BY ordinal_position;`

	const pkQ = `
SELECT kcu.column_name
FROM information_schema.table_constraints tco
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tco.constraint_name
 AND kcu.constraint_schema = tco.constraint_schema
WHERE tco.constraint_type = 'PRIMARY KEY'
  AND tco.table_name = $1
  AND tco.table_schema = 'public';`

	const fkQ = `
SELECT kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints AS tc
JOIN information_schema.key_column_usage AS kcu
  ON tc.constraint_name = kcu.constraint_name
 AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage AS ccu
  ON ccu.constraint_name = tc.constraint_name
 AND ccu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_name = $1;`

	pks := map[string]bool{}
	pkRows, err := r.db.QueryContext(ctx, pkQ, table)
	if err != nil {
		return err
	}
	for pkRows.Next() {
		var col string
		if err := pkRows.Scan(&col); err != nil {
			pkRows.Close()
			return err
		}
		pks[col] = true
	}
	pkRows.Close()
	if err := pkRows.Err(); err != nil {
		return err
	}

	type fkRef struct{ table, column string }
	fks := map[string]fkRef{}
	fkRows, err := r.db.QueryContext(ctx, fkQ, table)
	if err != nil {
		return err
	}
	for fkRows.Next() {
		var col, ftable, fcol string
		if err := fkRows.Scan(&col, &ftable, &fcol); err != nil {
			fkRows.Close()
			return err
		}
		fks[col] = fkRef{table: ftable, column: fcol}
	}
	fkRows.Close()
	if err := fkRows.Err(); err != nil {
		return err
	}

	colRows, err := r.db.QueryContext(ctx, columnsQ, table)
	if err != nil {
		return err
	}
	defer colRows.Close()

	fmt.Fprintf(sb, "Table: %s\n", table)
	sb.WriteString("Columns:\n")
	for colRows.Next() {
		var name, dataType, nullable string
		if err := colRows.Scan(&name, &dataType, &nullable); err != nil {
			return err
		}
		pk := ""
		if pks[name] {
			pk = " (PRIMARY KEY)"
		}
		fk := ""
		if ref, ok := fks[name]; ok {
			fk = fmt.Sprintf(" (FOREIGN KEY to %s.%s)", ref.table, ref.column)
		}
		null := "NOT NULL"
		if nullable == "YES" {
			null = "NULL"
		}
		fmt.Fprintf(sb, "  - %s (%s)%s%s %s\n", name, dataType, pk, fk, null)
	}
	sb.WriteString("\n")
	return colRows.Err()
}
