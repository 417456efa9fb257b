package gitrepo

import "errors"

// ErrGitMissing indicates the git binary is not installed or not on PATH.
var ErrGitMissing = errors.New("git command not found")

// ErrNotRepository indicates the target path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")
