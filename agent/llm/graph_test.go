package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	promptx "github.com/worldwise-ai/worldwise/agent/prompt"
)

type fakeChatModel struct {
	response *schema.Message
	inputs   [][]*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.inputs = append(f.inputs, input)
	return f.response, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

type okReply struct {
	OK bool `json:"ok"`
}

// Every embedded prompt carries literal JSON examples; each must survive
// FString templating intact and still reach the model.
func TestCompileStructuredGraphRendersEmbeddedPrompts(t *testing.T) {
	t.Parallel()

	prompts := promptx.LoadPromptSet()
	cases := []struct {
		name   string
		prompt string
	}{
		{"classifier", prompts.Classifier},
		{"corrector", prompts.Corrector},
		{"translator", prompts.Translator},
		{"culture", prompts.Culture},
		{"synthesizer", prompts.Synthesizer},
		{"evaluator", prompts.Evaluator},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if !strings.Contains(tc.prompt, "{") {
				t.Fatalf("%s prompt lost its JSON example", tc.name)
			}

			fake := &fakeChatModel{response: &schema.Message{Content: `{"ok":true}`}}
			runner, err := CompileStructuredGraph[okReply](context.Background(), fake, tc.prompt, tc.name)
			if err != nil {
				t.Fatalf("CompileStructuredGraph() error = %v", err)
			}

			payload := `{"query":"tell me about Japan"}`
			out, err := runner.Invoke(context.Background(), map[string]any{"input": payload})
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if !out.OK {
				t.Fatal("typed reply not parsed")
			}
			if len(fake.inputs) != 1 {
				t.Fatalf("model calls = %d, want 1", len(fake.inputs))
			}

			msgs := fake.inputs[0]
			if msgs[0].Content != tc.prompt {
				t.Fatalf("%s system prompt altered by templating:\n got: %q\nwant: %q", tc.name, msgs[0].Content, tc.prompt)
			}
			if msgs[len(msgs)-1].Content != payload {
				t.Fatalf("user payload altered by templating: %q", msgs[len(msgs)-1].Content)
			}
		})
	}
}

func TestEscapeFString(t *testing.T) {
	t.Parallel()

	if got := escapeFString(`{"a": {"b": 1}}`); got != `{{"a": {{"b": 1}}}}` {
		t.Fatalf("escapeFString() = %q", got)
	}
}
