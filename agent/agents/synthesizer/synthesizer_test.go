package synthesizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

type fakeChatModel struct {
	response *schema.Message
	err      error
	inputs   [][]*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

func userContent(t *testing.T, fake *fakeChatModel) string {
	t.Helper()
	if len(fake.inputs) == 0 {
		t.Fatal("model was never invoked")
	}
	msgs := fake.inputs[len(fake.inputs)-1]
	return msgs[len(msgs)-1].Content
}

func TestSynthesizeGroundedMode(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		response: &schema.Message{Content: `{"response":"Try Sushi Dai in Tsukiji.","tone":"friendly","confidence":0.9}`},
	}
	s, err := New(context.Background(), fake, "synthesizer prompt")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := s.Synthesize(context.Background(), contractx.SynthesisRequest{
		Query: "where should I eat in Japan?",
		Plan:  contractx.ExecutionPlan{Intent: "food_info", TargetSubject: "Japan"},
		Selection: contractx.Selection{
			Payloads: map[contractx.CapabilityID]contractx.CapabilityPayload{
				contractx.CapabilityRestaurants: {
					Subject: "Japan",
					Records: []contractx.Record{{"name": "Sushi Dai"}},
					Source:  "restaurants_api",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if out.Response == "" {
		t.Fatal("empty response")
	}
	if !strings.Contains(userContent(t, fake), `"mode":"grounded"`) {
		t.Fatal("payload with records must request grounded mode")
	}
}

func TestSynthesizeGeneralModeOnFallbackOnlyPayloads(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		response: &schema.Message{Content: `{"response":"Japan has a rich food culture.","tone":"friendly","confidence":0.8}`},
	}
	s, err := New(context.Background(), fake, "synthesizer prompt")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Synthesize(context.Background(), contractx.SynthesisRequest{
		Query: "where should I eat in Japan?",
		Plan:  contractx.ExecutionPlan{Intent: "food_info", TargetSubject: "Japan"},
		Selection: contractx.Selection{
			Payloads: map[contractx.CapabilityID]contractx.CapabilityPayload{
				contractx.CapabilityRestaurants: contractx.FallbackPayload(contractx.CapabilityRestaurants, "Japan"),
			},
		},
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(userContent(t, fake), `"mode":"general"`) {
		t.Fatal("fallback-only payloads must request general mode")
	}
}

func TestSynthesizeEmptyReplyIsSchemaViolation(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		response: &schema.Message{Content: `{"response":"","confidence":0.5}`},
	}
	s, err := New(context.Background(), fake, "synthesizer prompt")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Synthesize(context.Background(), contractx.SynthesisRequest{Query: "hi"})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("error = %v, want ErrSchemaViolation", err)
	}
}
