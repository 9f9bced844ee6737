// Package batch provides helpers for tools that operate on one or many
// items. Parameters may be a single string or an array of strings, and
// per-item failures are collected rather than aborting the whole batch.
package batch
