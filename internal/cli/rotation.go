package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/output"
)

// rotation manages one events file per session
type rotation struct {
	pathBuilder    func(sessionID string) (string, error)
	outputFile     *os.File
	bufferedWriter *bufio.Writer
}

func newRotation(pb func(string) (string, error)) *rotation {
	return &rotation{pathBuilder: pb}
}

func (r *rotation) Open(sessionID string) (writer *bufio.Writer, path string, err error) {
	if r.pathBuilder == nil {
		return nil, "", nil
	}

	r.Close()

	path, err = r.pathBuilder(sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build path: %w", err)
	}

	r.outputFile, err = os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file: %w", err)
	}
	r.bufferedWriter = bufio.NewWriter(r.outputFile)
	return r.bufferedWriter, path, nil
}

func (r *rotation) Close() error {
	var err error
	if r.bufferedWriter != nil {
		err = r.bufferedWriter.Flush()
		r.bufferedWriter = nil
	}
	if r.outputFile != nil {
		if cerr := r.outputFile.Close(); err == nil {
			err = cerr
		}
		r.outputFile = nil
	}
	return err
}

// sessionFilePath names events files <dir>/session-<id>.ndjson
func sessionFilePath(dir string) func(string) (string, error) {
	return func(sessionID string) (string, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return filepath.Join(dir, fmt.Sprintf("session-%s.ndjson", sessionID)), nil
	}
}

// rotatingSink writes each session's events to its own NDJSON file. A file is
// opened on session_start and flushed and closed on session_end.
type rotatingSink struct {
	mu     sync.Mutex
	rot    *rotation
	writer *output.NDJSONWriter
	onOpen func(path string)
}

func newRotatingSink(dir string, onOpen func(path string)) *rotatingSink {
	return &rotatingSink{rot: newRotation(sessionFilePath(dir)), onOpen: onOpen}
}

func (s *rotatingSink) Emit(event interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if start, ok := event.(*domain.SessionStart); ok {
		w, path, err := s.rot.Open(start.SessionID)
		if err != nil {
			return err
		}
		s.writer = output.NewNDJSONWriter(w)
		if s.onOpen != nil {
			s.onOpen(path)
		}
	}
	if s.writer == nil {
		return nil
	}
	if err := s.writer.Emit(event); err != nil {
		return err
	}
	if _, ok := event.(*domain.SessionEnd); ok {
		s.writer = nil
		return s.rot.Close()
	}
	return nil
}

// Close flushes a session cut short before its end event
func (s *rotatingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = nil
	return s.rot.Close()
}
