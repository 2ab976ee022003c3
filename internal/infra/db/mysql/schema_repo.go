package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SchemaRepository introspects information_schema for the current database
// and formats the same "Table:" blocks as the postgres variant.
type SchemaRepository struct {
	db *sql.DB
}

func NewSchemaRepository(db *sql.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

func (r *SchemaRepository) Describe(ctx context.Context) (string, error) {
	const tablesQ = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = DATABASE()
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
	// column_key and referenced_* columns make separate PK/FK queries unnecessary here
	const columnsQ = `
SELECT c.column_name, c.data_type, c.is_nullable, c.column_key,
       COALESCE(k.referenced_table_name, ''), COALESCE(k.referenced_column_name, '')
FROM information_schema.columns c
LEFT JOIN information_schema.key_column_usage k
  ON k.table_schema = c.table_schema
 AND k.table_name = c.table_name
 AND k.column_name = c.column_name
 AND k.referenced_table_name IS NOT NULL
WHERE c.table_schema = DATABASE() AND c.table_name = ?
ORDER BY c.ordinal_position;`

	rows, err := r.db.QueryContext(ctx, columnsQ, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	fmt.Fprintf(sb, "Table: %s\n", table)
	sb.WriteString("Columns:\n")
	for rows.Next() {
		var name, dataType, nullable, key, refTable, refColumn string
		if err := rows.Scan(&name, &dataType, &nullable, &key, &refTable, &refColumn); err != nil {
			return err
		}
		pk := ""
		if key == "PRI" {
			pk = " (PRIMARY KEY)"
		}
		fk := ""
		if refTable != "" {
			fk = fmt.Sprintf(" (FOREIGN KEY to %s.%s)", refTable, refColumn)
		}
		null := "NOT NULL"
		if nullable == "YES" {
			null = "NULL"
		}
		fmt.Fprintf(sb, "  - %s (%s)%s%s %s\n", name, dataType, pk, fk, null)
	}
	sb.WriteString("\n")
	return rows.Err()
}
