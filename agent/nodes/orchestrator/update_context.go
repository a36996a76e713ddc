package orchestratornode

import (
	statex "github.com/worldwise-ai/worldwise/agent/state"
)

// UpdateContext commits the completed turn to the rolling conversation
// context. Clarifying requests never reach this node, so asked-back turns
// leave the context untouched.
func UpdateContext(in *GraphState, store *statex.ContextStore) (*GraphState, error) {
	store.Update(in.Input.UserID, in.Plan.TargetSubject, in.Plan.Intent, in.Now)
	return in, nil
}
