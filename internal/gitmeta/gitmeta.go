// Package gitmeta collects version-control metadata from CI environment
// variables and attaches it to a warning run. The parsing core never touches
// this; it is a collaborator that decorates the finished run.
package gitmeta

import (
	"os"
	"regexp"
	"strconv"

	"github.com/swiftconcur/parser/pkg/warning"
)

// GitHub Actions puts the PR number inside GITHUB_REF: refs/pull/<n>/merge.
var pullRef = regexp.MustCompile(`^refs/pull/(\d+)/`)

// Apply populates the run's commit, branch, and pull-request fields from the
// environment. GitHub Actions variables are tried first, then the GitLab CI
// equivalents. Missing values leave the fields empty.
func Apply(run *warning.Run) {
	run.CommitSHA = firstEnv("GITHUB_SHA", "CI_COMMIT_SHA")
	run.Branch = firstEnv("GITHUB_REF_NAME", "CI_COMMIT_BRANCH")

	if m := pullRef.FindStringSubmatch(os.Getenv("GITHUB_REF")); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			run.PullRequest = n
		}
		return
	}
	if n, err := strconv.Atoi(os.Getenv("CI_MERGE_REQUEST_IID")); err == nil {
		run.PullRequest = n
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
