package cmd

import "github.com/paveg/proctool/internal/process"

var terminateCmd = newPIDCommand(pidActions[process.OpTerminate],
	"Force-kill a process",
	`Terminate a process immediately by PID. There is no graceful shutdown
or grace period.

Examples:
  proctool terminate 4242`)

func init() {
	rootCmd.AddCommand(terminateCmd)
}
