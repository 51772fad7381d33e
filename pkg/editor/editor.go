// Package editor resolves the user's text editor and prepares invocations
// for opening config files, optionally with the ZMK reference doc alongside
// in a split view.
package editor

import (
	"os"
	"os/exec"
	"path/filepath"
)

// profile describes how one known editor handles multiple files. splitArgs
// puts two files side by side; waitArg keeps the process in the foreground
// until the user closes the file (needed for GUI editors).
type profile struct {
	splitArgs     []string
	waitArg       string
	supportsSplit bool
}

var profiles = map[string]profile{
	"nvim":  {splitArgs: []string{"-O"}, supportsSplit: true},
	"vim":   {splitArgs: []string{"-O"}, supportsSplit: true},
	"vi":    {splitArgs: []string{"-O"}, supportsSplit: true},
	"zed":   {waitArg: "--wait", supportsSplit: true},
	"code":  {waitArg: "--wait", supportsSplit: true},
	"hx":    {supportsSplit: true},
	"emacs": {supportsSplit: true},
	"nano":  {},
}

// fallbackOrder is tried left to right when no override and no $EDITOR are
// set. nano is the final fallback even when nothing is on PATH.
var fallbackOrder = []string{"zed", "code", "nvim", "vim", "nano"}

// Resolve picks the editor command: the config override, then $EDITOR, then
// the first known editor found on PATH.
func Resolve(override string) string {
	if override != "" {
		return override
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	for _, ed := range fallbackOrder {
		if _, err := exec.LookPath(ed); err == nil {
			return ed
		}
	}
	return "nano"
}

// Open is a prepared editor invocation.
type Open struct {
	Command string
	Args    []string
	// SplitReference reports whether the reference doc is part of the
	// invocation. When false and a reference was requested, the caller
	// should surface the reference path instead.
	SplitReference bool
}

// Plan builds the invocation for opening target with editorCmd. A non-empty
// reference is opened first in a split when the editor supports it; editors
// without split support get the target alone. Unknown editors are assumed
// split-capable with no extra flags.
func Plan(editorCmd, target, reference string) Open {
	prof, ok := profiles[filepath.Base(editorCmd)]
	if !ok {
		prof = profile{supportsSplit: true}
	}

	files := []string{target}
	withRef := false
	if reference != "" && prof.supportsSplit {
		files = append([]string{reference}, files...)
		withRef = true
	}

	var args []string
	if len(prof.splitArgs) > 0 && len(files) > 1 {
		args = append(args, prof.splitArgs...)
	}
	if prof.waitArg != "" {
		args = append(args, prof.waitArg)
	}
	args = append(args, files...)

	return Open{Command: editorCmd, Args: args, SplitReference: withRef}
}

// Cmd converts the plan into an exec.Cmd wired to the caller's terminal.
func (o Open) Cmd() *exec.Cmd {
	cmd := exec.Command(o.Command, o.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
