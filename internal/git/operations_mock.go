package git

// MockGitOps is a mock implementation of Operations for testing.
type MockGitOps struct {
	Branch string
	Commit string
}

// NewMockGitOps creates a mock with sensible defaults.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		Branch: "main",
		Commit: "abc1234",
	}
}

func (m *MockGitOps) CurrentBranch(projectPath string) string {
	return m.Branch
}

func (m *MockGitOps) HeadCommit(projectPath string) string {
	return m.Commit
}
