package playlist

import "sync"

// Manager is the in-memory playlist host: it owns the library playlist plus
// any playlist created on demand, tracks which one is active, and hands out
// the designated temporary playlist Play targets. It is the concrete form
// of the opaque `playlist_new`/`playlist_get_temporary`/`playlist_set_active`
// host API spec §6 consumes.
type Manager struct {
	mu        sync.Mutex
	library   *Memory
	temporary *Memory
	active    *Memory
}

// NewManager builds a host over library, initially active.
func NewManager(library *Memory) *Manager {
	return &Manager{library: library, active: library}
}

// Library returns the permanent library playlist.
func (mgr *Manager) Library() *Memory { return mgr.library }

// Active returns the playlist actions currently target.
func (mgr *Manager) Active() *Memory {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.active
}

// SetActive makes p the active playlist.
func (mgr *Manager) SetActive(p *Memory) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.active = p
}

// Temporary returns the scratch playlist the Play action appends to,
// allocating it on first use.
func (mgr *Manager) Temporary() *Memory {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	if mgr.temporary == nil {
		mgr.temporary = New("Now Playing")
	}
	return mgr.temporary
}

// New allocates a fresh, empty playlist titled title. It does not become
// active on its own - callers decide that (the Create-playlist action does).
func (mgr *Manager) New(title string) *Memory {
	return New(title)
}
