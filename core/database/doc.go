// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration. SQLite is mainly used for local
// runs and tests with Name ":memory:".
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect. The student
// store uses it to verify the students table before an import.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "students")
package database
