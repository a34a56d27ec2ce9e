package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

var (
	hunkColor    = color.New(color.FgCyan)
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
	headerColor  = color.New(color.Bold)
)

type lineOp struct {
	kind    byte // ' ', '-' or '+'
	text    string
	oldLine int
	newLine int
}

// lineOps computes a line-level edit script between before and after.
func lineOps(before, after string) []lineOp {
	differ := dmp.New()
	a, b, lines := differ.DiffLinesToChars(before, after)
	diffs := differ.DiffCharsToLines(differ.DiffMain(a, b, false), lines)

	var ops []lineOp
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, text := range splitKeepingLines(d.Text) {
			op := lineOp{text: text, oldLine: oldLine, newLine: newLine}
			switch d.Type {
			case dmp.DiffEqual:
				op.kind = ' '
				oldLine++
				newLine++
			case dmp.DiffDelete:
				op.kind = '-'
				oldLine++
			case dmp.DiffInsert:
				op.kind = '+'
				newLine++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

func splitKeepingLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeDiff prints a unified diff of before and after for path.
func writeDiff(w io.Writer, path, before, after string) error {
	ops := lineOps(before, after)

	var changed []int
	for i, op := range ops {
		if op.kind != ' ' {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	if _, err := headerColor.Fprintf(w, "--- a/%s\n+++ b/%s\n", path, path); err != nil {
		return err
	}

	for i := 0; i < len(changed); {
		first, last := changed[i], changed[i]
		for i++; i < len(changed) && changed[i]-last <= 2*diffContext; i++ {
			last = changed[i]
		}
		start := max(0, first-diffContext)
		end := min(len(ops), last+diffContext+1)
		if err := writeHunk(w, ops[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func writeHunk(w io.Writer, ops []lineOp) error {
	var oldCount, newCount int
	for _, op := range ops {
		if op.kind != '+' {
			oldCount++
		}
		if op.kind != '-' {
			newCount++
		}
	}
	if _, err := hunkColor.Fprintf(w, "@@ -%d,%d +%d,%d @@\n", ops[0].oldLine, oldCount, ops[0].newLine, newCount); err != nil {
		return err
	}
	for _, op := range ops {
		text := strings.TrimSuffix(op.text, "\n")
		var err error
		switch op.kind {
		case '-':
			_, err = removedColor.Fprintf(w, "-%s\n", text)
		case '+':
			_, err = addedColor.Fprintf(w, "+%s\n", text)
		default:
			_, err = fmt.Fprintf(w, " %s\n", text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
