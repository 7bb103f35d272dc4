// Package main provides the sqlfront command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlfront/internal/cli"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/all"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
