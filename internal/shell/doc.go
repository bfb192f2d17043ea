// Package shell is the interactive terminal front end: a menu loop that
// prompts the operator for piece measurements, renders verdicts, listings,
// and reports, and generates piece identifiers. All business rules live in
// the system aggregate — the shell only validates raw input (numbers must
// parse, fields must not be empty) and formats results.
package shell
