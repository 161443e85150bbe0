// vela is the command line front-end for the vela language.
package main

import (
    "encoding/json"
    "fmt"
    "os"

    "github.com/davecgh/go-spew/spew"
    "github.com/inconshreveable/log15"
    "github.com/mattn/go-colorable"
    "github.com/mattn/go-isatty"
    "gopkg.in/urfave/cli.v1"

    "vela-lang/impl/internal/config"
    "vela-lang/impl/internal/interpreter"
    "vela-lang/impl/internal/repl"
    "vela-lang/impl/internal/runner"
)

var (
    configFileFlag = cli.StringFlag{
        Name:  "config",
        Usage: "TOML configuration file",
    }
    verbosityFlag = cli.StringFlag{
        Name:  "verbosity",
        Usage: "Logging level: crit, error, warn, info or debug",
    }
    maxDepthFlag = cli.IntFlag{
        Name:  "max-depth",
        Usage: "Maximum statement and group nesting accepted by the parser",
    }
    groupComparisonsFlag = cli.BoolFlag{
        Name:  "group-comparisons",
        Usage: "Parse parenthesised groups at comparison level",
    }
    formatFlag = cli.StringFlag{
        Name:  "format",
        Usage: "Output format: json or spew",
        Value: "json",
    }
)

// cfg is filled in by setup before any command runs.
var cfg config.Config

func newApp() *cli.App {
    app := cli.NewApp()
    app.Name = "vela"
    app.Usage = "the vela language interpreter"
    app.Version = "1.0.0"
    app.ArgsUsage = "[file]"
    app.Flags = []cli.Flag{configFileFlag, verbosityFlag, maxDepthFlag, groupComparisonsFlag}
    app.Before = setup
    app.Action = defaultAction
    app.Commands = []cli.Command{
        {
            Name:      "run",
            Usage:     "Evaluate a source file and print its value",
            ArgsUsage: "<file>",
            Action:    runFile,
        },
        {
            Name:   "repl",
            Usage:  "Start an interactive session",
            Action: startRepl,
        },
        {
            Name:      "tokens",
            Usage:     "Print the tokens of a source file, one JSON object per line",
            ArgsUsage: "<file>",
            Action:    printTokens,
        },
        {
            Name:      "ast",
            Usage:     "Print the syntax tree of a source file",
            ArgsUsage: "<file>",
            Flags:     []cli.Flag{formatFlag},
            Action:    printAST,
        },
        {
            Name:   "dumpconfig",
            Usage:  "Show configuration values",
            Action: dumpConfig,
        },
    }
    return app
}

func main() {
    if err := newApp().Run(os.Args); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

// setup loads the configuration file, applies flag overrides and installs
// the root log handler.
func setup(ctx *cli.Context) error {
    cfg = config.Defaults
    if file := ctx.GlobalString(configFileFlag.Name); file != "" {
        if err := config.Load(file, &cfg); err != nil { return cli.NewExitError(err.Error(), 1) }
    }
    if ctx.GlobalIsSet(verbosityFlag.Name) { cfg.Log.Level = ctx.GlobalString(verbosityFlag.Name) }
    if ctx.GlobalIsSet(maxDepthFlag.Name) { cfg.Interpreter.MaxDepth = ctx.GlobalInt(maxDepthFlag.Name) }
    if ctx.GlobalIsSet(groupComparisonsFlag.Name) { cfg.Interpreter.GroupComparisons = ctx.GlobalBool(groupComparisonsFlag.Name) }

    lvl, err := log15.LvlFromString(cfg.Log.Level)
    if err != nil { return cli.NewExitError(fmt.Sprintf("invalid log level %q", cfg.Log.Level), 1) }
    format := log15.LogfmtFormat()
    if isatty.IsTerminal(os.Stderr.Fd()) { format = log15.TerminalFormat() }
    log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(colorable.NewColorableStderr(), format)))
    return nil
}

func newInterpreter() *interpreter.Interpreter {
    return interpreter.New(cfg.Interpreter, log15.Root())
}

func defaultAction(ctx *cli.Context) error {
    if ctx.NArg() > 0 { return runFile(ctx) }
    return startRepl(ctx)
}

func fileArg(ctx *cli.Context) (string, error) {
    if ctx.NArg() != 1 { return "", cli.NewExitError("expected exactly one file argument", 2) }
    return ctx.Args().First(), nil
}

func runFile(ctx *cli.Context) error {
    path, err := fileArg(ctx)
    if err != nil { return err }
    // runner has already printed the failure
    if err := runner.Run(path, newInterpreter(), ctx.App.Writer); err != nil { return cli.NewExitError("", 1) }
    return nil
}

func startRepl(ctx *cli.Context) error {
    r := repl.New(newInterpreter(), cfg.REPL, log15.Root())
    if err := r.Start(); err != nil { return cli.NewExitError(err.Error(), 1) }
    return nil
}

func readSource(ctx *cli.Context) (string, error) {
    path, err := fileArg(ctx)
    if err != nil { return "", err }
    data, err := os.ReadFile(path)
    if err != nil { return "", cli.NewExitError(fmt.Sprintf("An error occurred reading file %s: %v", path, err), 1) }
    return string(data), nil
}

func printTokens(ctx *cli.Context) error {
    src, err := readSource(ctx)
    if err != nil { return err }
    toks, err := newInterpreter().Tokenize(src)
    if err != nil { return cli.NewExitError(err.Error(), 1) }
    enc := json.NewEncoder(ctx.App.Writer)
    enc.SetEscapeHTML(false)
    for _, t := range toks {
        if err := enc.Encode(t); err != nil { return err }
    }
    return nil
}

func printAST(ctx *cli.Context) error {
    src, err := readSource(ctx)
    if err != nil { return err }
    prog, err := newInterpreter().Parse(src)
    if err != nil { return cli.NewExitError(err.Error(), 1) }

    switch format := ctx.String(formatFlag.Name); format {
    case "json":
        enc := json.NewEncoder(ctx.App.Writer)
        enc.SetEscapeHTML(false)
        enc.SetIndent("", "  ")
        return enc.Encode(prog)
    case "spew":
        _, err := fmt.Fprint(ctx.App.Writer, spew.Sdump(prog))
        return err
    default:
        return cli.NewExitError(fmt.Sprintf("unknown format %q", format), 2)
    }
}

func dumpConfig(ctx *cli.Context) error {
    out, err := config.Dump(&cfg)
    if err != nil { return err }
    _, err = ctx.App.Writer.Write(out)
    return err
}
