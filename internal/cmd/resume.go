package cmd

import "github.com/paveg/proctool/internal/process"

var resumeCmd = newPIDCommand(pidActions[process.OpResume],
	"Resume a suspended process",
	`Resume a process previously suspended by PID. On Windows each thread is
resumed once, so a process suspended several times needs as many resumes.

Examples:
  proctool resume 4242`)

func init() {
	rootCmd.AddCommand(resumeCmd)
}
