package main

import (
	"errors"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jsonschema"
	schemaerrors "github.com/jacoelho/jsonschema/errors"
)

type validateFlags struct {
	schema      string
	jobs        int
	maxDepth    int
	checkSchema bool
}

func newValidateCmd(root *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate --schema <schema.json> <document>...",
		Short: "Validate JSON or YAML documents against a schema",
		Long: "Validates each document against the schema. Files ending in .yaml or .yml\n" +
			"are read as YAML, everything else as JSON.",
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if flags.schema == "" {
				return usageError{err: errors.New("--schema is required")}
			}
			return runValidate(root, flags, args, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.schema, "schema", "", "path to JSON Schema file")
	f.IntVarP(&flags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of documents validated concurrently")
	f.IntVar(&flags.maxDepth, "max-depth", jsonschema.DefaultMaxDepth, "maximum schema nesting during validation, 0 disables")
	f.BoolVar(&flags.checkSchema, "check-schema", false, "check the schema against the draft-04 meta-schema first")
	return cmd
}

// documentResult is the outcome of validating one document.
type documentResult struct {
	violations schemaerrors.ValidationList
	err        error
}

func runValidate(root *rootFlags, flags *validateFlags, docs []string, stdout, stderr io.Writer) error {
	logger, err := root.logger(stderr)
	if err != nil {
		return err
	}

	validator, err := jsonschema.LoadFile(flags.schema,
		jsonschema.WithLogger(logger),
		jsonschema.WithMaxDepth(flags.maxDepth),
	)
	if err != nil {
		_ = writef(stderr, "error loading schema: %v\n", err)
		return exitError{code: 1}
	}

	if flags.checkSchema {
		if ok := reportSchemaCheck(validator, flags.schema, stdout, stderr, false); !ok {
			return exitError{code: 1}
		}
	}

	results := make([]documentResult, len(docs))
	var g errgroup.Group
	g.SetLimit(max(flags.jobs, 1))
	for i, doc := range docs {
		g.Go(func() error {
			err := validator.ValidateFile(doc)
			if violations, ok := schemaerrors.AsValidations(err); ok {
				results[i].violations = violations
				return nil
			}
			results[i].err = err
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, doc := range docs {
		res := results[i]
		switch {
		case res.err != nil:
			failed = true
			if err := writef(stderr, "error validating: %v\n", res.err); err != nil {
				return exitError{code: 1}
			}
		case len(res.violations) > 0:
			failed = true
			for _, v := range res.violations {
				if err := writeln(stderr, v.Error()); err != nil {
					return exitError{code: 1}
				}
			}
			if err := writef(stderr, "%s fails to validate\n", doc); err != nil {
				return exitError{code: 1}
			}
		default:
			if err := writef(stdout, "%s validates\n", doc); err != nil {
				return exitError{code: 1}
			}
		}
	}

	if failed {
		return exitError{code: 1}
	}
	return nil
}
