package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	defaultTimeout = 5 * time.Second
	defaultSettle  = time.Second
	defaultKeyGap  = 100 * time.Millisecond
)

// Step is one scripted write to the PTY, sent Delay after the previous one.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config describes the program to spawn and how to drive it.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// KeypadConfig drives the calculator through its keyboard: wait Settle for
// the first frame, type Sequence with KeyGap between presses, then quit.
type KeypadConfig struct {
	Config
	Sequence string
	Settle   time.Duration
	KeyGap   time.Duration
}

// RunKeypad types a keypad sequence such as "12 + 3 =" into the calculator
// and quits with ctrl+q once the last result has had time to render.
func RunKeypad(ctx context.Context, cfg KeypadConfig) (*Recording, error) {
	settle := cfg.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	gap := cfg.KeyGap
	if gap <= 0 {
		gap = defaultKeyGap
	}
	run := cfg.Config
	run.Steps = Script(
		Press(nil, settle),
		Keys(cfg.Sequence, gap),
		cfg.Steps,
		Press(KeyCtrlQ, settle),
	)
	return Run(ctx, run)
}

// Run executes the configured command inside a PTY, replays the scripted
// inputs, and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, positive(cfg.Timeout, defaultTimeout))
	defer cancel()

	s, err := startSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := s.replay(ctx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := s.wait(ctx, cfg.AllowedExitCodes); err != nil {
		return nil, err
	}
	return s.recording(), nil
}

type session struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	started time.Time

	mu     sync.Mutex
	output bytes.Buffer
	done   chan struct{}
	once   sync.Once
}

func startSession(ctx context.Context, cfg Config) (*session, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	size := &pty.Winsize{
		Rows: uint16(positive(cfg.Height, defaultHeight)),
		Cols: uint16(positive(cfg.Width, defaultWidth)),
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	s := &session{cmd: cmd, ptmx: ptmx, started: time.Now(), done: make(chan struct{})}
	go s.capture()
	return s, nil
}

// capture copies terminal output until the PTY closes, answering terminal
// queries on the way.
func (s *session) capture() {
	defer close(s.done)
	responder := newTerminalResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			s.mu.Lock()
			_, _ = s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) replay(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := s.ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: write input: %w", err)
		}
	}
	return nil
}

func (s *session) wait(ctx context.Context, allowed []int) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()

	select {
	case err := <-exited:
		if err == nil {
			return nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			for _, code := range allowed {
				if exitErr.ExitCode() == code {
					return nil
				}
			}
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

// close releases the PTY and waits for capture to drain.
func (s *session) close() {
	s.once.Do(func() {
		_ = s.ptmx.Close()
		<-s.done
	})
}

func (s *session) recording() *Recording {
	s.close()
	s.mu.Lock()
	raw := append([]byte(nil), s.output.Bytes()...)
	s.mu.Unlock()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(s.started)}
}

func positive[T int | time.Duration](value, fallback T) T {
	if value > 0 {
		return value
	}
	return fallback
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC sends ctrl+c, which the calculator binds to copy.
	KeyCtrlC = []byte{3}
	// KeyCtrlQ asks the calculator to quit.
	KeyCtrlQ = []byte{17}
	// KeyEsc clears the calculator display.
	KeyEsc = []byte{27}
	// KeyBackspace deletes the last display token.
	KeyBackspace = []byte{127}
)
