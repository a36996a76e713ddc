package orchestratornode

import (
	statex "github.com/worldwise-ai/worldwise/agent/state"
)

func LoadContext(in *GraphState, store *statex.ContextStore) (*GraphState, error) {
	in.Snapshot = store.Get(in.Input.UserID)
	return in, nil
}
