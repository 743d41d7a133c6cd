// Package exec runs external commands for hatch.
//
// # Detached
//
// Start spawns a child and returns immediately. Output goes straight to the
// executor's streams and is never captured. The child outlives the caller
// if the caller exits first.
//
//	executor := exec.NewExecutor(nil)
//	proc, err := executor.InDir("demo").Start(ctx, "npm", "install")
//	// ... later, only if someone cares:
//	err = proc.Wait()
//
// # Spinner
//
// WaitWithSpinner draws a bubbletea spinner while a wait function runs:
//
//	err := exec.WaitWithSpinner(ctx, os.Stderr, "Installing", proc.Wait)
//
// # Testing
//
// WithCommandFunc swaps how *exec.Cmd values are built, which lets tests
// route every command to a helper process (see exec_test.go).
package exec
