package git

import (
	"context"
	"os/exec"
	"strings"
)

// GitStatus describes how git sees the password database
type GitStatus struct {
	IsRepo          bool
	Database        string
	DatabaseTracked bool // Committed hashes are exposed to everyone with the repo
	DatabaseIgnored bool
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(ctx context.Context, workDir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(ctx context.Context, workDir, path string) bool {
	cmd := exec.CommandContext(ctx, "git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(ctx context.Context, workDir, path string) bool {
	cmd := exec.CommandContext(ctx, "git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir

	// git check-ignore returns exit code 0 if file is ignored
	return cmd.Run() == nil
}

// CheckDatabase reports the git status of the database file at path
func CheckDatabase(ctx context.Context, workDir, path string) *GitStatus {
	status := &GitStatus{Database: path}
	if !IsGitRepo(ctx, workDir) {
		return status
	}
	status.IsRepo = true
	status.DatabaseTracked = IsTracked(ctx, workDir, path)
	status.DatabaseIgnored = IsIgnored(ctx, workDir, path)
	return status
}

// FormatGitStatus formats git status for display
func FormatGitStatus(status *GitStatus) string {
	if status == nil || !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit Integration:\n")

	switch {
	case status.DatabaseTracked:
		result.WriteString("   error: " + status.Database + " is tracked by git (run: git rm --cached " + status.Database + ")\n")
	case status.DatabaseIgnored:
		result.WriteString("   ok: " + status.Database + " is in .gitignore\n")
	default:
		result.WriteString("   warning: " + status.Database + " not in .gitignore (add to .gitignore)\n")
	}

	return result.String()
}
