// Package project inspects a directory before generating into it.
//
// Generation may target a fresh directory or one that already holds a
// project. Detect reports what is there so callers can skip work that was
// already done (an existing git repository) or tell the user that files
// will be merged.
//
//	info, err := project.Detect("myapp")
//	if err != nil {
//	    return err
//	}
//	if info.HasRepository {
//	    fmt.Println("already a git repository")
//	}
package project
