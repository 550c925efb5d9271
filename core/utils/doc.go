// Package utils provides common utility functions for the student-sync application.
// It includes helpers for coercing loosely typed cell values (strings, floats,
// byte slices) into the types the domain expects.
package utils
