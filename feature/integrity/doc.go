// Package integrity provides health checks over the student data.
//
// Unlike the 'student' package, which reconciles the table with a source
// file, this package validates what is already stored.
//
// # Checks Provided
//
//   - Schema: the students table has the id, name, age and city columns.
//   - Duplicates: natural keys (name, age, city) stored more than once. An
//     import skips these keys as ambiguous and then prunes every copy, so
//     fixing them first keeps one row per key.
//   - Storage: the bucket used to archive uploads exists.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/duplicates : Runs the duplicate check (supports ?fix=true).
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
