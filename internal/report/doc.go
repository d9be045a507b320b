// Package report renders evaluation results for people (colored text) and
// for tools (YAML).
package report
