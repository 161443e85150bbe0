package repl

import (
    "bytes"
    "errors"
    "io"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "testing"

    "github.com/inconshreveable/log15"
    "github.com/peterh/liner"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "vela-lang/impl/internal/config"
    "vela-lang/impl/internal/interpreter"
)

// scriptedReader replays lines, then reports io.EOF.
type scriptedReader struct {
    lines   []string
    errs    map[int]error
    prompts []string
    history []string
    calls   int
}

func (s *scriptedReader) Prompt(p string) (string, error) {
    s.prompts = append(s.prompts, p)
    i := s.calls
    s.calls++
    if err, ok := s.errs[i]; ok { return "", err }
    if len(s.lines) == 0 { return "", io.EOF }
    line := s.lines[0]
    s.lines = s.lines[1:]
    return line, nil
}

func (s *scriptedReader) AppendHistory(item string) { s.history = append(s.history, item) }

func newRepl() *Repl {
    cfg := config.Defaults.REPL
    cfg.Color = false
    return New(interpreter.New(config.Defaults.Interpreter, nil), cfg, nil)
}

func TestRunPrintsResultsAndErrors(t *testing.T) {
    r := newRepl()
    in := &scriptedReader{lines: []string{"2 + 3 * 4", "x", "if (0) { 1 } else { 2 }"}}
    var out bytes.Buffer
    require.NoError(t, r.Run(in, &out))

    assert.Equal(t, Banner+"\n"+
        "14\n"+
        "Runtime error: undefined variable 'x'\n"+
        "2\n"+
        "\n", out.String())
    assert.Equal(t, []string{"2 + 3 * 4", "x", "if (0) { 1 } else { 2 }"}, r.History())
    assert.Equal(t, r.History(), in.history)
    assert.Equal(t, "> ", in.prompts[0])
}

func TestExitStopsLoop(t *testing.T) {
    r := newRepl()
    in := &scriptedReader{lines: []string{"1", "exit\n", "2"}}
    var out bytes.Buffer
    require.NoError(t, r.Run(in, &out))
    assert.Equal(t, Banner+"\n1\n", out.String())
    assert.Equal(t, []string{"1"}, r.History())
    assert.Equal(t, []string{"2"}, in.lines)
}

func TestBlankLinesSkipped(t *testing.T) {
    r := newRepl()
    in := &scriptedReader{lines: []string{"", "   ", "7"}}
    var out bytes.Buffer
    require.NoError(t, r.Run(in, &out))
    assert.Equal(t, []string{"7"}, r.History())
}

func TestAbortedPromptContinues(t *testing.T) {
    r := newRepl()
    in := &scriptedReader{lines: []string{"3"}, errs: map[int]error{0: liner.ErrPromptAborted}}
    var out bytes.Buffer
    require.NoError(t, r.Run(in, &out))
    assert.Contains(t, out.String(), "3\n")
}

func TestReaderFailureReturned(t *testing.T) {
    r := newRepl()
    boom := errors.New("tty gone")
    in := &scriptedReader{errs: map[int]error{0: boom}}
    err := r.Run(in, io.Discard)
    assert.Same(t, boom, err)
}

func TestMalformedLineDoesNotStopLoop(t *testing.T) {
    r := newRepl()
    in := &scriptedReader{lines: []string{"if (1) { 1", "\"open", "5 / 0", "4"}}
    var out bytes.Buffer
    require.NoError(t, r.Run(in, &out))
    assert.Equal(t, Banner+"\n"+
        "Parsing error: Unexpected end of file\n"+
        "Parsing error: unterminated string\n"+
        "Runtime error: division by zero\n"+
        "4\n\n", out.String())
}

func TestHistoryIsCopied(t *testing.T) {
    r := newRepl()
    require.NoError(t, r.Run(&scriptedReader{lines: []string{"1"}}, io.Discard))
    h := r.History()
    h[0] = "mutated"
    assert.Equal(t, []string{"1"}, r.History())
}

// memoryHistory stands in for *liner.State's history persistence.
type memoryHistory struct {
    lines    []string
    writeErr error
}

func (m *memoryHistory) ReadHistory(r io.Reader) (int, error) {
    data, err := io.ReadAll(r)
    if err != nil { return 0, err }
    m.lines = strings.Fields(string(data))
    return len(m.lines), nil
}

func (m *memoryHistory) WriteHistory(w io.Writer) (int, error) {
    if m.writeErr != nil { return 0, m.writeErr }
    n := 0
    for _, l := range m.lines {
        if _, err := io.WriteString(w, l+"\n"); err != nil { return n, err }
        n++
    }
    return n, nil
}

func recordingRepl(t *testing.T, historyFile string) (*Repl, func() []*log15.Record) {
    t.Helper()
    var mu sync.Mutex
    var records []*log15.Record
    logger := log15.New()
    logger.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
        mu.Lock()
        defer mu.Unlock()
        records = append(records, r)
        return nil
    }))
    cfg := config.Defaults.REPL
    cfg.Color = false
    cfg.HistoryFile = historyFile
    r := New(interpreter.New(config.Defaults.Interpreter, nil), cfg, logger)
    return r, func() []*log15.Record {
        mu.Lock()
        defer mu.Unlock()
        return append([]*log15.Record(nil), records...)
    }
}

func TestHistoryFileRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "history")
    r, records := recordingRepl(t, path)

    r.loadHistory(&memoryHistory{})
    assert.Empty(t, records(), "a missing history file is not worth a warning")

    r.saveHistory(&memoryHistory{lines: []string{"1+2", "x"}})
    data, err := os.ReadFile(path)
    require.NoError(t, err)
    assert.Equal(t, "1+2\nx\n", string(data))

    loaded := &memoryHistory{}
    r.loadHistory(loaded)
    assert.Equal(t, []string{"1+2", "x"}, loaded.lines)
    assert.Empty(t, records())
}

func TestHistoryWriteFailureIsLogged(t *testing.T) {
    r, records := recordingRepl(t, filepath.Join(t.TempDir(), "history"))
    r.saveHistory(&memoryHistory{writeErr: errors.New("disk full")})

    recs := records()
    require.Len(t, recs, 1)
    assert.Equal(t, log15.LvlWarn, recs[0].Lvl)
    assert.Equal(t, "Failed to save history", recs[0].Msg)
    assert.Contains(t, recs[0].Ctx, "repl")
}

func TestHistoryCreateFailureIsLogged(t *testing.T) {
    r, records := recordingRepl(t, filepath.Join(t.TempDir(), "missing", "dir", "history"))
    r.saveHistory(&memoryHistory{lines: []string{"1"}})

    recs := records()
    require.Len(t, recs, 1)
    assert.Equal(t, log15.LvlWarn, recs[0].Lvl)
}
