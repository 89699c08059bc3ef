// Package logx provides the package-level structured logger used across
// the tree, parser, and CLI layers. It wraps logrus rather than the
// standard library logger, matching the corpus's structured-logging
// convention for anything beyond a CLI's direct stdout.
package logx

import "github.com/sirupsen/logrus"

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// L returns the shared logger. Call sites attach fields with WithField /
// WithFields rather than formatting them into the message.
func L() *logrus.Logger { return log }

// SetLevel adjusts verbosity; the CLI exposes this via --log-level.
func SetLevel(level logrus.Level) { log.SetLevel(level) }
