package clipboard

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	system "github.com/atotto/clipboard"

	"github.com/csheth/calc/internal/expr"
	"github.com/csheth/calc/internal/logging"
)

// Backend reads and writes the system clipboard.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error) {
	if system.Unsupported {
		return "", errUnsupported
	}
	return system.ReadAll()
}

func (systemBackend) WriteAll(text string) error {
	if system.Unsupported {
		return errUnsupported
	}
	return system.WriteAll(text)
}

var errUnsupported = errors.New("clipboard unsupported on this system")

var (
	nonNumeric    = regexp.MustCompile(`[^\d.-]`)
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// Service copies display values to and pastes numbers from the clipboard.
// Failures are logged and reported as false, never returned.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// New returns a Service. A nil backend selects the system clipboard.
func New(backend Backend, logger *slog.Logger) *Service {
	if backend == nil {
		backend = systemBackend{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{backend: backend, logger: logger}
}

// Copy writes text to the clipboard. The error sentinel is never copied.
func (s *Service) Copy(text string) bool {
	if text == expr.ErrorSentinel {
		return false
	}
	if err := s.backend.WriteAll(text); err != nil {
		logging.LogError(s.logger, "failed to copy text", err)
		return false
	}
	return true
}

// Paste reads the clipboard and extracts a number from it.
func (s *Service) Paste() (string, bool) {
	text, err := s.backend.ReadAll()
	if err != nil {
		logging.LogError(s.logger, "failed to read clipboard text", err)
		return "", false
	}
	value, ok := Extract(text)
	if !ok && strings.TrimSpace(text) != "" {
		s.logger.Warn("pasted text not a valid number", slog.String("text", text))
	}
	return value, ok
}

// Extract keeps only digits, dots and minus signs from text and parses the
// longest leading number, e.g. "abc123.45xyz" yields "123.45".
func Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	candidate := leadingNumber.FindString(nonNumeric.ReplaceAllString(text, ""))
	if candidate == "" {
		return "", false
	}
	value, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return "", false
	}
	// drop the sign of negative zero
	if value == 0 {
		value = 0
	}
	return strconv.FormatFloat(value, 'f', -1, 64), true
}
