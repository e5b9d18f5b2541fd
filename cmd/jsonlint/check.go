package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
)

func newCheckSchemaCmd(root *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check-schema <schema>...",
		Short: "Check schemas against the draft-04 meta-schema",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			logger, err := root.logger(stderr)
			if err != nil {
				return err
			}

			failed := false
			for _, path := range args {
				validator, err := jsonschema.LoadFile(path, jsonschema.WithLogger(logger))
				if err != nil {
					failed = true
					_ = writef(stderr, "error loading schema: %v\n", err)
					continue
				}
				if !reportSchemaCheck(validator, path, stdout, stderr, true) {
					failed = true
				}
			}
			if failed {
				return exitError{code: 1}
			}
			return nil
		},
	}
}

// reportSchemaCheck prints the meta-schema and reference problems of
// validator's schema and reports whether it passed. Success is only
// announced when verbose.
func reportSchemaCheck(validator *jsonschema.Validator, path string, stdout, stderr io.Writer, verbose bool) bool {
	result := errors.Flatten(validator.CheckSchema(), validator.CheckRefs())
	if result.IsValid() {
		if verbose {
			_ = writef(stdout, "%s is a valid draft-04 schema\n", path)
		}
		return true
	}
	for _, msg := range result.Messages() {
		_ = writef(stderr, "%s (in %s)\n", msg, path)
	}
	_ = writef(stderr, "%s is not a valid draft-04 schema\n", path)
	return false
}
