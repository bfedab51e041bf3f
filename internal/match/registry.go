package match

// Registry holds the live rooms and which rooms each connection sits in.
// It is owned by the event loop and is not safe for concurrent use.
type Registry struct {
	rooms   map[string]*Room
	members map[string]map[string]struct{} // conn_id -> room ids
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		members: make(map[string]map[string]struct{}),
	}
}

// Get returns the room with the given id.
func (g *Registry) Get(roomID string) (*Room, bool) {
	room, ok := g.rooms[roomID]
	return room, ok
}

// Len reports the number of live rooms.
func (g *Registry) Len() int { return len(g.rooms) }

func (g *Registry) put(room *Room) {
	g.rooms[room.ID] = room
}

func (g *Registry) delete(roomID string) {
	delete(g.rooms, roomID)
}

func (g *Registry) attach(connID, roomID string) {
	set, ok := g.members[connID]
	if !ok {
		set = make(map[string]struct{})
		g.members[connID] = set
	}
	set[roomID] = struct{}{}
}

func (g *Registry) detach(connID, roomID string) {
	set := g.members[connID]
	delete(set, roomID)
	if len(set) == 0 {
		delete(g.members, connID)
	}
}

// RoomsOf lists the rooms a connection has joined.
func (g *Registry) RoomsOf(connID string) []string {
	set := g.members[connID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
