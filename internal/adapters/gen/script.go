package gen

import (
	"os"
	"strings"

	"go.trai.ch/tdbuild/internal/core/domain"
)

// EmitScript renders a self-contained POSIX shell script that performs the
// same invocation Invoke would. The argument list is the task's Argv,
// rendered one argument per line, so the deferred execution is byte-identical
// to the immediate one apart from when it runs.
func (i *ToolInvoker) EmitScript(task *domain.GenerationTask) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	sb.WriteString("# Generated by tdbuild for task ")
	sb.WriteString(task.Name)
	sb.WriteString(".\n")
	sb.WriteString("set -eu\n\n")

	sb.WriteString("exec ")
	sb.WriteString(shellQuote(task.Generator))
	for _, arg := range task.Argv() {
		sb.WriteString(" \\\n  ")
		sb.WriteString(shellQuote(arg))
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

// shellQuote single-quotes an argument for POSIX sh, escaping embedded
// single quotes.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, domain.DirPerm)
}
