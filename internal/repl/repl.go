// Package repl implements the interactive read-evaluate-print loop.
package repl

import (
    "errors"
    "fmt"
    "io"
    "os"
    "strings"

    "github.com/fatih/color"
    "github.com/inconshreveable/log15"
    "github.com/peterh/liner"

    "vela-lang/impl/internal/config"
    "vela-lang/impl/internal/interpreter"
    "vela-lang/impl/internal/value"
)

const (
    Banner   = "Vela REPL v1.0"
    exitLine = "exit"
)

// LineReader is the subset of *liner.State the loop needs.
type LineReader interface {
    Prompt(prompt string) (string, error)
    AppendHistory(item string)
}

type Repl struct {
    ip      *interpreter.Interpreter
    cfg     config.REPL
    log     log15.Logger
    history []string

    errColor *color.Color
    valColor *color.Color
}

func New(ip *interpreter.Interpreter, cfg config.REPL, logger log15.Logger) *Repl {
    if logger == nil { logger = log15.Root() }
    r := &Repl{
        ip:       ip,
        cfg:      cfg,
        log:      logger.New("module", "repl"),
        errColor: color.New(color.FgRed),
        valColor: color.New(color.FgGreen),
    }
    if !cfg.Color {
        r.errColor.DisableColor()
        r.valColor.DisableColor()
    } else {
        r.errColor.EnableColor()
        r.valColor.EnableColor()
    }
    return r
}

// History returns the lines entered so far, oldest first.
func (r *Repl) History() []string { return append([]string(nil), r.history...) }

// Run reads lines until "exit" or end of input. Each line is interpreted on
// its own; errors are printed and the loop continues.
func (r *Repl) Run(in LineReader, out io.Writer) error {
    fmt.Fprintln(out, Banner)
    for {
        line, err := in.Prompt(r.cfg.Prompt)
        if errors.Is(err, io.EOF) {
            fmt.Fprintln(out)
            return nil
        }
        if errors.Is(err, liner.ErrPromptAborted) { continue }
        if err != nil { return err }

        line = strings.TrimRight(line, "\r\n")
        if line == exitLine { return nil }
        if strings.TrimSpace(line) == "" { continue }

        r.history = append(r.history, line)
        in.AppendHistory(line)

        v, err := r.ip.Interpret(line)
        if err != nil {
            r.errColor.Fprintln(out, err.Error())
            continue
        }
        r.valColor.Fprintln(out, value.Format(v))
    }
}

// Start runs the loop on the terminal, persisting line-editor history to
// cfg.HistoryFile when set.
func (r *Repl) Start() error {
    ln := liner.NewLiner()
    defer ln.Close()
    ln.SetCtrlCAborts(true)

    if r.cfg.HistoryFile != "" {
        r.loadHistory(ln)
        defer r.saveHistory(ln)
    }
    return r.Run(ln, color.Output)
}

// historyStore is the persistence half of *liner.State.
type historyStore interface {
    ReadHistory(r io.Reader) (int, error)
    WriteHistory(w io.Writer) (int, error)
}

// loadHistory reads cfg.HistoryFile into h. A missing file is not an error.
func (r *Repl) loadHistory(h historyStore) {
    f, err := os.Open(r.cfg.HistoryFile)
    if err != nil {
        if !os.IsNotExist(err) { r.log.Warn("Failed to open history", "file", r.cfg.HistoryFile, "err", err) }
        return
    }
    defer f.Close()
    if _, err := h.ReadHistory(f); err != nil { r.log.Warn("Failed to read history", "file", r.cfg.HistoryFile, "err", err) }
}

func (r *Repl) saveHistory(h historyStore) {
    f, err := os.Create(r.cfg.HistoryFile)
    if err != nil {
        r.log.Warn("Failed to save history", "file", r.cfg.HistoryFile, "err", err)
        return
    }
    if _, err := h.WriteHistory(f); err != nil { r.log.Warn("Failed to save history", "file", r.cfg.HistoryFile, "err", err) }
    if err := f.Close(); err != nil { r.log.Warn("Failed to close history", "file", r.cfg.HistoryFile, "err", err) }
}
