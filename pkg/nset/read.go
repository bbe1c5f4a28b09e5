package nset

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

// ReadFrom reads a single line from r and parses it. A parse failure is
// logged and returned; it never panics, so interactive callers can report the
// error and keep reading.
func ReadFrom(r *bufio.Reader, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, err
	}

	s, perr := Parse(strings.TrimRight(line, "\r\n"))
	if perr != nil {
		logger.Warn("failed to parse set", "input", line, "error", perr)
		return nil, perr
	}
	return s, nil
}

// Scanner reads one set per line, skipping blank lines. Lines that fail to
// parse are logged and skipped; Scan moves on to the next line.
type Scanner struct {
	lines    *bufio.Scanner
	parser   *Parser
	logger   *slog.Logger
	set      *Set
	line     int
	failures int
}

// NewScanner returns a Scanner over r. A nil parser means the default Parser,
// a nil logger means slog.Default().
func NewScanner(r io.Reader, parser *Parser, logger *slog.Logger) *Scanner {
	if parser == nil {
		parser = &defaultParser
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		lines:  bufio.NewScanner(r),
		parser: parser,
		logger: logger,
	}
}

// Scan advances to the next well-formed set. It returns false at end of
// input or on a read error, see Err.
func (s *Scanner) Scan() bool {
	for s.lines.Scan() {
		s.line++
		text := s.lines.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		parsed, err := s.parser.Parse(text)
		if err != nil {
			s.failures++
			s.logger.Warn("skipping malformed set", "line", s.line, "error", err)
			continue
		}
		s.set = parsed
		return true
	}
	s.set = nil
	return false
}

// Set returns the set produced by the last successful Scan.
func (s *Scanner) Set() *Set { return s.set }

// Line returns the number of the last line read, starting at 1.
func (s *Scanner) Line() int { return s.line }

// Failures returns how many lines were skipped as malformed.
func (s *Scanner) Failures() int { return s.failures }

// Err returns the first read error. Parse failures are not reported here.
func (s *Scanner) Err() error { return s.lines.Err() }
