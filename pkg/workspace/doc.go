// Package workspace reads Cargo workspaces from disk.
//
// # Overview
//
// A workspace is a directory whose Cargo.toml declares a [workspace]
// section. Components are directories below it that hold both a Cargo.toml
// and a src/ directory. This package:
//
//   - loads the root manifest ([LoadRoot])
//   - walks the tree and parses every component manifest ([Discover])
//   - counts packages without parsing them ([CountPackages])
//
// Only dependency names are extracted, in the order they are declared.
// Versions, paths and features are ignored.
//
// # Errors
//
// A missing or unparsable root manifest is fatal. A component manifest that
// cannot be read or parsed is skipped and reported in [Discovery.Skipped].
//
//	root, err := workspace.LoadRoot(dir, workspace.Options{RequireWorkspace: true})
//	found, err := workspace.Discover(ctx, dir, workspace.Options{})
//	for _, s := range found.Skipped {
//	    log.Warn("skipped manifest", "path", s.Path, "err", s.Err)
//	}
package workspace
