// Package config loads vela settings from TOML.
package config

import (
    "bufio"
    "errors"
    "fmt"
    "os"
    "reflect"

    "github.com/naoina/toml"

    "vela-lang/impl/internal/evaluator"
    "vela-lang/impl/internal/parser"
)

// Interpreter controls the core pipeline.
type Interpreter struct {
    MaxDepth         int  // statement and group nesting accepted by the parser
    MaxEvalDepth     int  // recursion accepted by the evaluator
    GroupComparisons bool // parse "(a < b)" as a comparison group
}

type REPL struct {
    Prompt      string
    HistoryFile string `toml:",omitempty"`
    Color       bool
}

type Log struct {
    Level string // crit, error, warn, info or debug
}

type Config struct {
    Interpreter Interpreter
    REPL        REPL
    Log         Log
}

var Defaults = Config{
    Interpreter: Interpreter{
        MaxDepth:     parser.DefaultMaxDepth,
        MaxEvalDepth: evaluator.DefaultMaxDepth,
    },
    REPL: REPL{
        Prompt:      "> ",
        HistoryFile: ".vela_history",
        Color:       true,
    },
    Log: Log{Level: "warn"},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
    NormFieldName: func(rt reflect.Type, key string) string {
        return key
    },
    FieldToKey: func(rt reflect.Type, field string) string {
        return field
    },
    MissingField: func(rt reflect.Type, field string) error {
        return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
    },
}

// Load decodes file over cfg; fields absent from the file keep their values.
func Load(file string, cfg *Config) error {
    f, err := os.Open(file)
    if err != nil {
        return err
    }
    defer f.Close()

    err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
    // Add file name to errors that have a line number.
    if _, ok := err.(*toml.LineError); ok {
        err = errors.New(file + ", " + err.Error())
    }
    return err
}

// Dump renders cfg as TOML.
func Dump(cfg *Config) ([]byte, error) {
    return tomlSettings.Marshal(cfg)
}
