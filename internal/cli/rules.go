package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"craftplan/internal/compiler"
	"craftplan/internal/ir"
)

// RuleInfo is one compiled rule in inspection output.
type RuleInfo struct {
	Name     string           `json:"name"`
	Cost     int64            `json:"cost"`
	Requires []string         `json:"requires,omitempty"`
	Consumes map[string]int64 `json:"consumes,omitempty"`
	Produces map[string]int64 `json:"produces,omitempty"`
}

// RulesResult is the payload of the rules command.
type RulesResult struct {
	SpecHash string     `json:"spec_hash"`
	Items    []string   `json:"items"`
	Rules    []RuleInfo `json:"rules"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules <spec-file>",
		Short: "Compile a spec and dump its rule catalog",
		Long: `Compile a crafting spec and print the rule catalog in declaration
order: name, cost, required presence, consumed and produced quantities.

This is the compile-and-inspect command - it fails if the spec does not
compile, so a clean listing doubles as a compilation check.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRules(opts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	spec, compiled, err := loadAndCompile(formatter, specPath)
	if err != nil {
		return err
	}

	result := RulesResult{
		SpecHash: specDigest(spec),
		Items:    spec.Items,
		Rules:    make([]RuleInfo, 0, len(spec.Recipes)),
	}
	for _, r := range spec.Recipes {
		result.Rules = append(result.Rules, RuleInfo{
			Name:     r.Name,
			Cost:     r.Cost,
			Requires: r.Requires,
			Consumes: r.Consumes,
			Produces: r.Produces,
		})
	}

	if opts.Format == "json" {
		return formatter.JSON(result)
	}

	fmt.Fprintf(formatter.Writer, "%d rule(s), %d item(s), spec_hash=%s\n",
		len(result.Rules), compiled.Catalog.Len(), result.SpecHash)
	for _, r := range result.Rules {
		fmt.Fprintf(formatter.Writer, "  %-30s cost=%d", r.Name, r.Cost)
		if len(r.Requires) > 0 {
			fmt.Fprintf(formatter.Writer, "  requires=%s", strings.Join(r.Requires, ","))
		}
		if len(r.Consumes) > 0 {
			fmt.Fprintf(formatter.Writer, "  consumes=%s", quantityList(r.Consumes))
		}
		if len(r.Produces) > 0 {
			fmt.Fprintf(formatter.Writer, "  produces=%s", quantityList(r.Produces))
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}

// loadAndCompile is the shared front half of every spec-consuming command:
// load the file, compile it, and translate failures into exit-coded errors
// already reported through the formatter.
func loadAndCompile(formatter *OutputFormatter, specPath string) (*ir.CraftSpec, *compiler.Compiled, error) {
	spec, err := compiler.LoadSpecFile(specPath)
	if err != nil {
		code := compiler.ErrCodeGeneric
		var loadErr *compiler.LoadError
		if errors.As(err, &loadErr) {
			code = loadErr.Code
		}
		formatter.Error(code, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "load spec", err)
	}

	compiled, err := compiler.CompileSpec(*spec)
	if err != nil {
		formatter.Error(compiler.ErrCodeBadField, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "compile spec", err)
	}

	return spec, compiled, nil
}

func quantityList(m map[string]int64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k, m[k])
	}
	return strings.Join(parts, ",")
}
