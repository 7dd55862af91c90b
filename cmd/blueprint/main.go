// Blueprint validates and filters request data against YAML form blueprints.
//
// Usage:
//
//	# Validate a payload file against the "contact" blueprint
//	blueprint validate contact payload.json
//
//	# Print the payload reduced to declared fields
//	blueprint filter contact payload.yaml --missing-null
//
//	# List the rule paths of a blueprint
//	blueprint types user/register
//
//	# Serve the HTTP API and reload blueprints on change
//	BLUEPRINT_WATCH=true blueprint serve
//
// Settings come from BLUEPRINT_* environment variables, optionally read from
// a .env file given with --env-file.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
