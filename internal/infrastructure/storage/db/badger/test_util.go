package dbbadger

import "testing"

func newTestRepoManager(t *testing.T) RepoManager {
	t.Helper()

	manager, err := NewRepoManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Log(err)
		}
	})
	return manager
}
