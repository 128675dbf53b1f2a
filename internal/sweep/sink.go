// internal/sweep/sink.go
package sweep

import (
	"encoding/csv"
	"os"

	"github.com/pingcap/errors"
)

// CSVSink appends rows to a results file, flushing after every row so an
// interrupted sweep loses at most the row in flight.
type CSVSink struct {
	path         string
	file         *os.File
	writer       *csv.Writer
	wroteHeader  bool
	rowsAppended int
	closed       bool
}

// OpenCSV opens path for appending. The header is written only when the file
// did not exist before this call; an existing file keeps whatever header it
// already has.
func OpenCSV(path string, header []string) (*CSVSink, error) {
	existed, err := fileExists(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Annotatef(err, "open results file %s", path)
	}

	s := &CSVSink{path: path, file: f, writer: csv.NewWriter(f)}
	if !existed {
		if err := s.write(header); err != nil {
			f.Close()
			return nil, err
		}
		s.wroteHeader = true
	}
	return s, nil
}

// Append writes one row and flushes it to the file.
func (s *CSVSink) Append(row []string) error {
	if err := s.write(row); err != nil {
		return err
	}
	s.rowsAppended++
	return nil
}

func (s *CSVSink) write(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return errors.Annotatef(err, "write %s", s.path)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return errors.Annotatef(err, "flush %s", s.path)
	}
	return nil
}

// Path returns the file the sink writes to.
func (s *CSVSink) Path() string { return s.path }

// WroteHeader reports whether OpenCSV created the file and wrote its header.
func (s *CSVSink) WroteHeader() bool { return s.wroteHeader }

// Rows returns the number of data rows appended through this sink.
func (s *CSVSink) Rows() int { return s.rowsAppended }

// Close flushes pending output and closes the file. Closing twice is a no-op.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.writer.Flush()
	flushErr := s.writer.Error()
	closeErr := s.file.Close()
	if flushErr != nil {
		return errors.Annotatef(flushErr, "flush %s", s.path)
	}
	if closeErr != nil {
		return errors.Annotatef(closeErr, "close %s", s.path)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Annotatef(err, "stat %s", path)
}
