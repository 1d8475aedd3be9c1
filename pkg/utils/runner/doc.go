// Package runner executes external processes while streaming and capturing output.
package runner
