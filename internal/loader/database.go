package loader

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// loadDatabase flattens an embedded relational database: one Document per
// table, listing columns and every row. Tables are fully materialized; there
// is no pagination.
func (l *Loader) loadDatabase(ctx context.Context, path string) ([]Document, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sqlite handle failed: %w", err)
	}
	defer sqlDB.Close()

	var tables []string
	if err := db.WithContext(ctx).
		Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}

	var docs []Document
	for _, table := range tables {
		doc, err := l.flattenTable(ctx, db, path, table)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("database has no tables: %s", path)
	}
	return docs, nil
}

func (l *Loader) flattenTable(ctx context.Context, db *gorm.DB, path, table string) (Document, error) {
	rows, err := db.WithContext(ctx).Raw("SELECT * FROM " + quoteIdent(table)).Rows()
	if err != nil {
		return Document{}, fmt.Errorf("select table %q failed: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Document{}, fmt.Errorf("read columns of %q failed: %w", table, err)
	}

	var sb strings.Builder
	sb.WriteString("Table: ")
	sb.WriteString(table)
	sb.WriteString("\nColumns: ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString("\nRows:\n")

	values := make([]interface{}, len(cols))
	pointers := make([]interface{}, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return Document{}, fmt.Errorf("scan row of %q failed: %w", table, err)
		}
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = renderValue(v)
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(rendered, ", "))
		sb.WriteString(")\n")
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("iterate rows of %q failed: %w", table, err)
	}

	return Document{
		Content:  sb.String(),
		Source:   path + "#" + table,
		Metadata: map[string]string{"table": table},
	}, nil
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
