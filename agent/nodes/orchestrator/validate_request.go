package orchestratornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

const anonymousUserID = "anonymous"

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	input := in.Input
	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		return nil, fmt.Errorf("%w: query is empty", contractx.ErrValidation)
	}
	if strings.TrimSpace(input.UserID) == "" {
		input.UserID = anonymousUserID
	}
	if input.Text == "" {
		input.Text = input.Query
	}

	return &GraphState{
		Input: input,
		Now:   nowFn().UTC(),
	}, nil
}
