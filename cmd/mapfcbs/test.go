package main

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/orangedot/mapf-cbs/internal/selfcheck"
)

// TestCmd runs the self-check scenario suite standalone, exiting
// non-zero on the first failure.
type TestCmd struct{}

func (c *TestCmd) Run(logger *log.Logger) error {
	err := selfcheck.RunAll(func(name string, checkErr error) {
		if checkErr != nil {
			logger.Error("check failed", "name", name, "error", checkErr)
			return
		}
		logger.Info("check passed", "name", name)
	})
	if err != nil {
		return errors.New("self-check suite failed")
	}
	logger.Info("all checks passed")
	return nil
}
