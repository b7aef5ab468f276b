package cli

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/vburojevic/hfx/internal/corpus"
	"github.com/vburojevic/hfx/internal/provider"
)

// hintForProvider suggests a next step for dataset server failures.
func hintForProvider(err error) string {
	var fieldErr *provider.FieldError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("pass --field naming a string column present in every record; %q is not one", fieldErr.Field)
	}
	var provErr *provider.Error
	if errors.As(err, &provErr) {
		if provErr.NotFound() {
			return "verify the dataset, config and split names with: hfx splits -d <dataset>"
		}
		if provErr.StatusCode == 429 {
			return "the server is rate limiting; wait a moment and retry with a smaller --page-size"
		}
		if provErr.StatusCode >= 500 {
			return "the dataset server is having trouble; retry later"
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "check network access and the endpoint URL; run: hfx doctor"
	}
	return ""
}

// hintForOutput suggests a fix for local file failures.
func hintForOutput(err error) string {
	if errors.Is(err, os.ErrPermission) {
		return "pick a writable location with --output"
	}
	if errors.Is(err, os.ErrNotExist) {
		return "check the path; parent directories are only created for the export output file"
	}
	return ""
}

// hintForCorpus points at the offending document of a malformed corpus.
func hintForCorpus(err error) string {
	var formatErr *corpus.FormatError
	if errors.As(err, &formatErr) {
		return fmt.Sprintf("document %d is malformed; re-export the corpus or pass the right --corpus-format", formatErr.Line)
	}
	return ""
}
