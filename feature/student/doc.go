// Package student wires student imports to the database, object storage and HTTP.
//
// # Components
//
//   - GormStore: reconcile.Store and reconcile.NameFinder over the students
//     table. Prepare creates the table on first use or verifies its columns.
//   - Service: opens import sources (local path, s3://bucket/key or an
//     uploaded payload), runs the reconcile engine and builds the report.
//     Uploads are optionally archived to object storage first.
//   - Handler: GET /students and POST /students/import.
//   - Feature: registers the handler with the loader.Manager.
//
// # Status codes for POST /students/import
//
//   - 200: completed, possibly with skipped ambiguous records
//   - 400: no file, or an extension other than .csv / .xlsx
//   - 422: aborted by a decode or database failure; nothing was deleted
//   - 503: cancelled; nothing was deleted
package student
