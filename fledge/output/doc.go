// Package output provides styled terminal output for CLI tools.
//
// # Usage
//
//	import "github.com/simonhull/hatch/fledge/output"
//
//	output.Success("Created project: demo")
//	output.Info("Next steps:")
//	output.Step("npm start")
//	output.Warn("Skipped src/app.js (kept existing file)")
//	output.Error("Something went wrong")
//
// # Verbose Mode
//
//	output.SetVerbose(true)
//	output.Verbose("This only prints in verbose mode")
//
// # Tests
//
// SetWriter redirects everything to a buffer:
//
//	var buf bytes.Buffer
//	prev := output.SetWriter(&buf)
//	defer output.SetWriter(prev)
//
// # Styling
//
//   - Success: 🐣 green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
