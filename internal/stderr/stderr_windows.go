//go:build windows

// Package stderr is a no-op on Windows, whose audio stack doesn't write to
// the console.
package stderr

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Start is a no-op on Windows.
func Start(*logrus.Entry) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
