// Package output serialises an annotated document and its occurrence table
// as a self-contained HTML page and a CSV file.
package output
