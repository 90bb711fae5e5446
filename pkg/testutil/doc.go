// Package testutil holds helpers shared by the icshared package tests:
// building file trees on disk or in an afero filesystem, asserting on the
// result, and a Reporter that records what it is told.
package testutil
