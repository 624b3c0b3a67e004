package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relprune/pkg/domain/interfaces"
)

// Reporter writes step outputs in the format read by the GitHub Actions runner.
// When no output file is configured, outputs are written as name=value lines to the fallback writer.
type Reporter struct {
	path     string
	fallback io.Writer
	newDelim func() string
	mu       sync.Mutex
}

var _ interfaces.OutputReporter = (*Reporter)(nil)

// NewReporter creates a Reporter. path is usually the value of $GITHUB_OUTPUT.
func NewReporter(path string, fallback io.Writer) *Reporter {
	return &Reporter{
		path:     path,
		fallback: fallback,
		newDelim: func() string { return "ghadelimiter_" + uuid.NewString() },
	}
}

// SetOutput emits one named output
func (r *Reporter) SetOutput(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		if _, err := fmt.Fprintf(r.fallback, "%s=%s\n", name, value); err != nil {
			return goerr.Wrap(err, "failed to write output", goerr.V("name", name))
		}
		return nil
	}

	delim := r.newDelim()
	if strings.Contains(name, delim) || strings.Contains(value, delim) {
		return goerr.New("output contains delimiter", goerr.V("name", name))
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file", goerr.V("path", r.path))
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delim, value, delim); err != nil {
		return goerr.Wrap(err, "failed to write output file",
			goerr.V("path", r.path),
			goerr.V("name", name),
		)
	}

	return nil
}
