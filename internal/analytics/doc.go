// Package analytics derives the figures shown on budget, goal and dashboard
// screens from already-loaded records.
//
// Every function is pure: inputs are plain models and slices, "today" is
// always an argument, and nothing is cached between calls. Money is
// decimal.Decimal throughout. Calendar dates are compared as whole days at
// midnight UTC (see DateOf).
package analytics
