// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

/* ------------ leveled logging on top of the stdlib logger ------------ */

var (
	logMu  sync.Mutex
	logger = log.New(os.Stderr, "", log.LstdFlags)

	// debug lines are off unless DDI_DEBUG is set
	debugEnabled = os.Getenv("DDI_DEBUG") != ""
)

// SetLogOutput redirects every log helper, e.g. to a session log file.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.SetOutput(w)
}

// SetDebug toggles LogDebugf lines at runtime.
func SetDebug(on bool) {
	logMu.Lock()
	defer logMu.Unlock()
	debugEnabled = on
}

func LogDebugf(format string, a ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	if !debugEnabled {
		return
	}
	logger.Output(2, fmt.Sprintf("[DEBUG] "+format, a...))
}

func LogInfof(format string, a ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.Output(2, fmt.Sprintf("[INFO] "+format, a...))
}

func LogWarnf(format string, a ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.Output(2, fmt.Sprintf("[WARN] "+format, a...))
}

func LogErrorf(format string, a ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	logger.Output(2, fmt.Sprintf("[ERROR] "+format, a...))
}
