package chatbot

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponder struct {
	gotPrompt string
	reply     string
	err       error
}

func (f *fakeResponder) Generate(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.reply, f.err
}

func TestChat_WrapsPrompt(t *testing.T) {
	fake := &fakeResponder{reply: "Rotate your tires every 10k km."}
	svc := &Service{Responder: fake}

	reply, err := svc.Chat(context.Background(), "when should I rotate tires?")
	require.NoError(t, err)
	assert.Equal(t, "Rotate your tires every 10k km.", reply)
	assert.True(t, strings.Contains(fake.gotPrompt, "when should I rotate tires?"))
	assert.True(t, strings.Contains(fake.gotPrompt, "AutoMind"))
}

func TestChat_NoResponder(t *testing.T) {
	svc := &Service{}
	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChat_EmptyMessage(t *testing.T) {
	svc := &Service{Responder: &fakeResponder{}}
	_, err := svc.Chat(context.Background(), "   ")
	assert.Error(t, err)
}
