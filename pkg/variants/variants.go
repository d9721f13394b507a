// Package variants drives the optimizer to produce sets of named outputs
// from a single input: preset variants, responsive breakpoints and
// sequential file batches. The input is decoded once and the decoded
// source is reused for every variant.
package variants

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pixelmill/pkg/optimizer"
)

// VariantSet maps caller-chosen variant names to their outputs.
type VariantSet map[string]*optimizer.Optimized

// VariantError reports the failure of one named variant, carrying the
// pipeline stage so callers can say "thumbnail failed at encode".
type VariantError struct {
	Name  string
	Stage optimizer.Stage
	Err   error
}

func (e *VariantError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("variant %q failed at %s: %v", e.Name, e.Stage, e.Err)
	}
	return fmt.Sprintf("variant %q failed: %v", e.Name, e.Err)
}

func (e *VariantError) Unwrap() error { return e.Err }

// VariantErrors collects per-variant failures from one ProcessVariants
// call. Variants that succeeded are still present in the returned set.
type VariantErrors []*VariantError

func (errs VariantErrors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d variant(s) failed: %s", len(errs), strings.Join(parts, "; "))
}

// orNil converts an empty slice to a nil error.
func (errs VariantErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ProcessVariants decodes data once and produces one output per named
// options value. order fixes the production sequence; names missing from
// it (or all names, when order is empty) are appended in sorted order.
//
// A failing variant does not invalidate variants already produced: the
// returned set holds every success, and the returned error, when non-nil,
// is a VariantErrors listing each failure. A decode failure fails the
// whole call.
func ProcessVariants(ctx context.Context, data []byte, named map[string]optimizer.Options, order ...string) (VariantSet, error) {
	src, err := optimizer.Load(data)
	if err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}
	return FromSource(ctx, src, named, order...)
}

// FromSource is ProcessVariants for an already-decoded source.
func FromSource(ctx context.Context, src *optimizer.Source, named map[string]optimizer.Options, order ...string) (VariantSet, error) {
	set := make(VariantSet, len(named))
	var errs VariantErrors

	for _, name := range resolveOrder(named, order) {
		opts := named[name]
		out, err := optimizer.OptimizeSource(ctx, src, opts)
		if err != nil {
			errs = append(errs, &VariantError{Name: name, Stage: stageOf(err), Err: err})
			continue
		}
		set[name] = out
	}

	return set, errs.orNil()
}

// resolveOrder returns the variant production order: the caller-supplied
// names first (those present in named), then any remaining names sorted.
func resolveOrder(named map[string]optimizer.Options, order []string) []string {
	out := make([]string, 0, len(named))
	seen := make(map[string]bool, len(named))
	for _, name := range order {
		if _, ok := named[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}

	rest := make([]string, 0, len(named))
	for name := range named {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// stageOf extracts the pipeline stage from a wrapped error chain.
func stageOf(err error) optimizer.Stage {
	var se *optimizer.StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	var de *optimizer.DecodeError
	if errors.As(err, &de) {
		return optimizer.StageDecode
	}
	return ""
}
