package pipeline

import (
	"fmt"
	"os"
)

// NewWorkspace creates the scoped temp directory that holds every
// intermediate artifact of one invocation. The returned cleanup removes
// the whole tree and is safe to defer on every exit path. parent may be
// empty to use the system temp dir.
func NewWorkspace(parent string) (string, func(), error) {
	dir, err := os.MkdirTemp(parent, "tcap-*")
	if err != nil {
		return "", nil, fmt.Errorf("create workspace: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
