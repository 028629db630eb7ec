package cmd

import "github.com/paveg/proctool/internal/process"

var suspendCmd = newPIDCommand(pidActions[process.OpSuspend],
	"Suspend every thread of a process",
	`Suspend a process by PID. All of its threads stop running until the
process is resumed. The process stays in the process table.

Examples:
  proctool suspend 4242`)

func init() {
	rootCmd.AddCommand(suspendCmd)
}
