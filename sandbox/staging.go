package sandbox

import (
	"path/filepath"
	"strings"
)

// ScriptName is the file name of the staged artifact inside the staging
// directory and, via the bind mount, inside the guest.
const ScriptName = "script.py"

// File permissions for the staged artifact. The guest runs as an arbitrary
// user inside the container, so the script must be world-readable.
const (
	filePermission = 0o644
)

// Dedent strips the longest common leading whitespace from every non-blank
// line. Callers that build the code string inside an indented block of
// their own (template literals, heredocs) would otherwise submit source
// with an extra indent level, which is a syntax error in Python.
func Dedent(code string) string {
	lines := strings.Split(code, "\n")

	margin := ""
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			// Blank and whitespace-only lines don't contribute to the margin
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if !found {
			margin = indent
			found = true
			continue
		}
		i := 0
		for i < len(margin) && i < len(indent) && margin[i] == indent[i] {
			i++
		}
		margin = margin[:i]
	}

	if margin == "" {
		return code
	}

	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

// stageScript materializes the dedented source as a single file in a fresh,
// uniquely named temp directory and returns the directory path. The caller
// owns the directory and must remove it on every exit path.
func stageScript(fs FileSystem, code string) (string, error) {
	dir, err := fs.MkdirTemp("", "runbox-exec-*")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ScriptName)
	if err := fs.WriteFile(path, []byte(Dedent(code)), filePermission); err != nil {
		// Don't leak the directory when the write fails
		_ = fs.RemoveAll(dir)
		return "", err
	}

	return dir, nil
}
