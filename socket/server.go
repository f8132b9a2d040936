package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

const profileChangesRoom = "profile-changes"

// NewSocketServer initializes and returns a new Socket.IO server. Every
// connection is subscribed to the profile-change feed; clients join their
// own user room with a "join" event to receive match announcements.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		c.Join(profileChangesRoom)
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in join request")
			return
		}
		log.Printf("👥 Socket %s joined as user %s\n", c.ID(), userID)
		c.Join(userRoom(userID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", reason)
	})

	return server
}

func userRoom(userID string) string {
	return "user:" + userID
}

// Broadcaster adapts the Socket.IO server to the services.Notifier
// interface.
type Broadcaster struct {
	Server *socketio.Server
}

// ProfileChanged tells connected clients a profile's data changed so they
// can refetch affected candidate lists. Best-effort fan-out.
func (b *Broadcaster) ProfileChanged(userID string) {
	b.Server.BroadcastToRoom("/", profileChangesRoom, "profileChanged", map[string]string{"userId": userID})
}

// MatchCreated announces a new match to both matched users.
func (b *Broadcaster) MatchCreated(userA, userB, matchID string) {
	payload := map[string]string{"matchId": matchID, "userA": userA, "userB": userB}
	b.Server.BroadcastToRoom("/", userRoom(userA), "matchCreated", payload)
	b.Server.BroadcastToRoom("/", userRoom(userB), "matchCreated", payload)
}
