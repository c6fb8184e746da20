package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/task"
)

func timeNow() time.Time {
	return time.Now()
}

// requireIDArg returns the first positional argument or an error when missing.
func requireIDArg(c *cli.Command) (string, error) {
	id := c.Args().First()
	if id == "" {
		return "", fmt.Errorf("missing required argument: id")
	}
	return id, nil
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func matchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		// invalid pattern, fall back to literal comparison
		return pattern == name
	}
	return ok
}

// expandTagGlobs resolves glob patterns against the tags actually present in
// the task collection, so `--tag 'front*'` matches frontend and front-page.
func expandTagGlobs(tasks []task.Task, patterns []string) []string {
	if len(patterns) == 0 {
		return nil
	}

	seen := map[string]bool{}
	for _, t := range tasks {
		for _, tag := range t.Tags {
			seen[tag] = true
		}
	}

	matched := []string{}
	for tag := range seen {
		for _, pattern := range patterns {
			if matchGlob(pattern, tag) {
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}
