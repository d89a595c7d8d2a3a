// Command pfcheck runs the cross-check kernels over stdin/stdout or serves them
// over HTTP.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MJE43/pf-crosscheck/internal/shim"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	a.sync()
	if err == nil {
		return shim.ExitOK
	}

	fmt.Fprintf(stderr, "pfcheck: %v\n", err)
	var usage usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return shim.ExitCode(err)
}
