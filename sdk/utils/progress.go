// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"os"
	"strings"
)

/* ------------ tiny UI helpers for single-line progress ------------ */

const barLength = 50

// PrintProgressBar rewrites a single console line with a fixed-width bar.
// The line gets its newline only once done==total, so repeated calls animate
// in place.
func PrintProgressBar(done, total int64, prefix, suffix string) {
	if total <= 0 {
		return
	}
	if done > total {
		done = total
	}
	pct := float64(done) / float64(total) * 100
	filled := int(int64(barLength) * done / total)
	bar := strings.Repeat("█", filled) + strings.Repeat("-", barLength-filled)
	fmt.Fprintf(os.Stderr, "\r%s |%s| %5.1f%% %s", prefix, bar, pct, suffix)
	if done == total {
		fmt.Fprintln(os.Stderr)
	}
}

// ConsoleProgress returns a (done, total) callback for the transfer APIs
// drawing a single-line percentage bar.
func ConsoleProgress(prefix string) func(done, total int64) {
	return func(done, total int64) {
		PrintProgressBar(done, total, prefix, HumanBytes(done))
	}
}

// HumanBytes formats a byte count for console lines.
func HumanBytes(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
