// Package runner executes a source file once.
package runner

import (
    "fmt"
    "io"
    "os"

    "github.com/inconshreveable/log15"

    "vela-lang/impl/internal/interpreter"
    "vela-lang/impl/internal/value"
)

// Run interprets the file at path and prints its value or error to out,
// logging through the root logger.
func Run(path string, ip *interpreter.Interpreter, out io.Writer) error {
    return RunWithLogger(path, ip, out, log15.Root())
}

// RunWithLogger is Run with an explicit logger; nil falls back to the root
// logger. A read failure is printed and returned; evaluation errors are
// returned after printing so callers can choose an exit status.
func RunWithLogger(path string, ip *interpreter.Interpreter, out io.Writer, logger log15.Logger) error {
    if logger == nil { logger = log15.Root() }
    logger = logger.New("module", "runner")

    data, err := os.ReadFile(path)
    if err != nil {
        logger.Debug("Failed to read file", "path", path, "err", err)
        fmt.Fprintf(out, "An error occurred reading file %s: %v\n", path, err)
        return err
    }
    logger.Debug("Running file", "path", path, "bytes", len(data))

    v, err := ip.Interpret(string(data))
    if err != nil {
        fmt.Fprintln(out, err)
        return err
    }
    fmt.Fprintln(out, value.Format(v))
    return nil
}
