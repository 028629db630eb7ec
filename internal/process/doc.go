// Package process provides the process-control primitives of proctool:
// create, terminate, suspend and resume.
//
// Every operation on an existing process opens a handle, acts on it and
// closes it before returning, on success and failure alike. On Linux the
// handle is a pidfd, so the action cannot hit a different process that
// reused the PID after the open. Other Unix systems fall back to signalling
// the PID directly. On Windows the handle comes from OpenProcess with full
// access rights.
//
// Suspend and resume act on the whole process. On Unix this is SIGSTOP and
// SIGCONT, which the kernel applies to every thread. On Windows there is no
// documented process-wide call, so every thread in a Toolhelp32 snapshot is
// suspended or resumed individually. Windows keeps a suspend count per
// thread and this package does not track it: a process suspended twice
// needs two resumes.
//
// Terminate is a hard kill. On Windows the process exits with the
// configured code; on Unix the exit status is always "killed by SIGKILL".
package process
