package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// AwaitEnter blocks until the operator presses Enter or ctx is cancelled.
// It is the synchronization point for the manual login step.
func AwaitEnter(ctx context.Context, r io.Reader, message string) error {
	PrintHighlight(message)

	done := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(r)
		_, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			done <- err
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReadLine prompts for a single trimmed line from stdin
func ReadLine(prompt string) (string, error) {
	fmt.Print(Cyan(prompt))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prompts for a password without echoing it
func ReadPassword(prompt string) (string, error) {
	fmt.Print(Cyan(prompt))
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(password)), nil
}
