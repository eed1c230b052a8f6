package notification

import (
	"net/mail"
	"sort"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/user"
)

const digestTemplate = "notification_digest"

// Digest is the unread notifications of one user, ready to be emailed.
type Digest struct {
	User          user.User
	Notifications []classroom.Notification
}

// Digests groups unread notifications per recipient. Users without an email address
// or without unread notifications get no digest. Result is sorted by user id.
func Digests(list []classroom.Notification, users []user.User) []Digest {
	idx := user.Index(users)
	byUser := make(map[string][]classroom.Notification)
	for _, n := range list {
		if n.Read {
			continue
		}
		byUser[n.UserID] = append(byUser[n.UserID], n)
	}

	res := make([]Digest, 0, len(byUser))
	for userID, notifs := range byUser {
		usr, ok := idx[userID]
		if !ok || usr.Email == "" {
			continue
		}
		res = append(res, Digest{User: usr, Notifications: Merge(notifs)})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].User.ID < res[j].User.ID })
	return res
}

type digestData struct {
	Name          string
	Notifications []classroom.Notification
}

// Message renders the digest into an email.
func (d Digest) Message(frontendBaseURL string) *core.EmailMessage {
	return &core.EmailMessage{
		To:              []mail.Address{{Name: d.User.Name, Address: d.User.Email}},
		Subject:         "Tienes notificaciones nuevas",
		TemplateName:    digestTemplate,
		TemplateData:    digestData{Name: d.User.Name, Notifications: d.Notifications},
		FrontendBaseURL: frontendBaseURL,
	}
}
