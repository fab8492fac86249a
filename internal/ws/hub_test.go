package ws

import (
	"sync"
	"testing"

	"tsena-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func clientTest(hub *Hub, userID string) *Client {
	return &Client{hub: hub, userID: userID, envoi: make(chan []byte, 16)}
}

func TestHub_AttacherDetacher(t *testing.T) {
	hub := NewHub()

	c1 := clientTest(hub, "user-1")
	c2 := clientTest(hub, "user-1")
	hub.attacher(c1)
	hub.attacher(c2)
	assert.Equal(t, 2, hub.NbSessions("user-1"))

	hub.detacher(c1)
	assert.Equal(t, 1, hub.NbSessions("user-1"))

	// Détacher deux fois la même session est inoffensif.
	hub.detacher(c1)
	assert.Equal(t, 1, hub.NbSessions("user-1"))

	hub.detacher(c2)
	assert.Equal(t, 0, hub.NbSessions("user-1"))
}

func TestHub_Diffuser(t *testing.T) {
	hub := NewHub()

	destinataire := clientTest(hub, "user-1")
	autre := clientTest(hub, "user-2")
	hub.attacher(destinataire)
	hub.attacher(autre)

	hub.Diffuser("user-1", &model.Notification{
		Titre:   "Proposition acceptée",
		Message: "Votre proposition de 200 kg a été acceptée",
	})

	assert.Len(t, destinataire.envoi, 1)
	assert.Empty(t, autre.envoi)

	payload := <-destinataire.envoi
	assert.Contains(t, string(payload), "Proposition acceptée")
}

// Une déconnexion pendant une diffusion ne doit jamais envoyer sur un canal
// fermé : la fermeture (detacher) et l'envoi (Diffuser) sont sérialisés par le
// verrou du hub.
func TestHub_DiffuserPendantDetachement(t *testing.T) {
	hub := NewHub()
	n := &model.Notification{Titre: "t"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := clientTest(hub, "user-1")
			hub.attacher(c)
			hub.detacher(c)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				hub.Diffuser("user-1", n)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.NbSessions("user-1"))
}

func TestHub_DiffuserSansSession(t *testing.T) {
	hub := NewHub()

	// Aucun socket ouvert : la diffusion est un no-op silencieux, la
	// notification persistée sera relue à la prochaine connexion.
	hub.Diffuser("absent", &model.Notification{Titre: "t"})
}
