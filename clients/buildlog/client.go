package buildlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// ErrLogFileNotFound is returned when the build log file does not exist
var ErrLogFileNotFound = errors.New("build log file not found")

// Client reads and appends to the flat build log file
//go:generate mockgen -package=buildlog -destination ./mock.go -source=client.go
type Client interface {
	ReadLines(ctx context.Context) ([]string, error)
	AppendLine(ctx context.Context, line string) error
}

// NewClient returns a new buildlog.Client
func NewClient(ctx context.Context, logFilePath string) (Client, error) {
	if logFilePath == "" {
		return nil, fmt.Errorf("Log file path is empty")
	}

	return &client{
		logFilePath: logFilePath,
	}, nil
}

type client struct {
	logFilePath string
}

func (c *client) ReadLines(ctx context.Context) (lines []string, err error) {

	file, err := os.Open(c.logFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrLogFileNotFound, c.logFilePath)
		}
		return nil, fmt.Errorf("Opening build log %v failed: %w", c.logFilePath, err)
	}
	defer file.Close()

	lines = make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("Reading build log %v failed: %w", c.logFilePath, err)
	}

	log.Debug().Msgf("Read %v lines from build log %v", len(lines), c.logFilePath)

	return lines, nil
}

func (c *client) AppendLine(ctx context.Context, line string) (err error) {

	file, err := os.OpenFile(c.logFilePath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("Opening build log %v for appending failed: %w", c.logFilePath, err)
	}
	defer file.Close()

	// make sure the new entry starts on its own line
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() > 0 {
		lastByte := make([]byte, 1)
		if _, err = file.ReadAt(lastByte, info.Size()-1); err != nil {
			return err
		}
		if lastByte[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err = file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("Appending to build log %v failed: %w", c.logFilePath, err)
	}

	log.Debug().Msgf("Appended \"%v\" to build log %v", line, c.logFilePath)

	return nil
}
