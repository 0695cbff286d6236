package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/slogx"
)

func TestRender(t *testing.T) {
	t.Parallel()

	subject, body, err := Render(Message{
		To:       "ada@example.com",
		Template: TemplateVerifyEmail,
		Data:     map[string]string{"username": "ada", "code": "123456", "expires": "15 minutes"},
	})
	require.NoError(t, err)
	require.Equal(t, "Verify your email address", subject)
	require.Contains(t, body, "123456")
	require.Contains(t, body, "ada")
}

func TestRenderEscapesData(t *testing.T) {
	t.Parallel()

	_, body, err := Render(Message{
		Template: TemplateOrganizationInvitation,
		Data:     map[string]string{"organization": "<script>x</script>"},
	})
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, err := Render(Message{Template: "nope"})
	require.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestLogDispatcher(t *testing.T) {
	t.Parallel()

	d := LogDispatcher{Logger: slogx.Discard()}
	require.NoError(t, d.Send(context.Background(), Message{Template: TemplateVerifyEmail}))
	require.ErrorIs(t, d.Send(context.Background(), Message{Template: "nope"}), ErrUnknownTemplate)
}
