// Package persist serializes calculation history to and from CSV.
//
// The format is a header row "operation,operand1,operand2,result,timestamp"
// followed by one row per record. Numbers are written with the shortest
// exact representation and timestamps in RFC 3339, so exporting and
// re-importing a history reproduces it field for field.
//
// Import is strict: any row that cannot be parsed fails the whole
// import with a MalformedRecordError naming the row.
package persist
