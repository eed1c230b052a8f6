package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

func TestDigests(t *testing.T) {
	users := append([]user.User{{ID: "s3", Name: "Sin Email", Role: user.RoleStudent}}, students...)
	list := []classroom.Notification{
		{ID: "grade-sub-1", UserID: "s1", Title: "Nueva calificación", Message: `Tu tarea "Landing" ha sido calificada: 9/10`, CreatedAt: now},
		{ID: "notif-1", UserID: "s1", Title: "Anuncio", Read: true, CreatedAt: now},
		{ID: "reminder-a1-s3", UserID: "s3", Title: "Recordatorio de entrega", CreatedAt: now},
		{ID: "reminder-a1-ghost", UserID: "ghost", Title: "Recordatorio de entrega", CreatedAt: now},
	}

	digests := Digests(list, users)
	require.Len(t, digests, 1)
	assert.Equal(t, "s1", digests[0].User.ID)
	assert.Equal(t, []string{"grade-sub-1"}, ids(digests[0].Notifications))

	msg := digests[0].Message("https://educompass.example.org")
	require.NoError(t, msg.Render())
	assert.Equal(t, "ana@example.com", msg.To[0].Address)
	assert.True(t, msg.HasRecipients())
	assert.True(t, msg.HasContent())
	assert.Contains(t, msg.TextContent, "Hola Ana Martínez")
	assert.Contains(t, msg.TextContent, `* Nueva calificación: Tu tarea "Landing" ha sido calificada: 9/10`)
	assert.Contains(t, msg.TextContent, "https://educompass.example.org")
	assert.Contains(t, msg.HTMLContent, "<strong>Nueva calificación</strong>")
	assert.Contains(t, msg.HTMLContent, "Tu tarea &#34;Landing&#34; ha sido calificada: 9/10")
}
