package info

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/drblury/docweaver/probe"
)

type probePayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

func (ih *InfoHandler) respondProbe(w http.ResponseWriter, r *http.Request, statusCode int, state string, details ...string) {
	ih.RespondWithJSON(w, r, statusCode, probePayload{Status: state, Details: details})
}

// runChecks runs checks in order, each bounded by the probe timeout, and
// stops at the first failure. It returns the names of the checks that
// passed.
func (ih *InfoHandler) runChecks(ctx context.Context, checks []Check) ([]string, error) {
	timeout := ih.probeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	var passed []string
	for _, check := range checks {
		if check.Probe == nil {
			continue
		}
		err := probe.WithTimeout(check.Probe, timeout)(ctx)
		switch {
		case err == nil:
			passed = append(passed, check.Name)
		case errors.Is(err, context.DeadlineExceeded):
			return passed, fmt.Errorf("%s timed out after %s", check.Name, timeout)
		case errors.Is(err, context.Canceled):
			return passed, fmt.Errorf("%s was cancelled", check.Name)
		default:
			return passed, fmt.Errorf("%s failed: %w", check.Name, err)
		}
	}
	return passed, nil
}

// numbered names the non-nil checks "probe 1", "probe 2", ... in order.
func numbered(fns []ProbeFunc) []Check {
	var checks []Check
	for _, fn := range fns {
		if fn != nil {
			checks = append(checks, Check{Name: fmt.Sprintf("probe %d", len(checks)+1), Probe: fn})
		}
	}
	return checks
}
