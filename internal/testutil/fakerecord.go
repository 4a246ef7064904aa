package testutil

import "sync"

// FakeRecord is an in-memory durable session record for testing.
type FakeRecord struct {
	mu    sync.Mutex
	token string
	user  string

	// Error injection.
	LoadErr  error
	SaveErr  error
	ClearErr error

	// Saves and Clears count writes.
	Saves  int
	Clears int
}

// NewFakeRecord creates a FakeRecord pre-seeded with the given values.
func NewFakeRecord(token, user string) *FakeRecord {
	return &FakeRecord{token: token, user: user}
}

// Load implements session.Record.
func (r *FakeRecord) Load() (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return "", "", r.LoadErr
	}
	return r.token, r.user, nil
}

// Save implements session.Record.
func (r *FakeRecord) Save(token, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.token = token
	r.user = user
	r.Saves++
	return nil
}

// Clear implements session.Record.
func (r *FakeRecord) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Clears++
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.token = ""
	r.user = ""
	return nil
}

// Stored returns the current record contents.
func (r *FakeRecord) Stored() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token, r.user
}
