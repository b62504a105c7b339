package domain

import "testing"

func TestTopicKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Data Science", "data_science"},
		{"data science", "data_science"},
		{"DEVOPS", "devops"},
		{"machine learning engineer", "machine_learning_engineer"},
		{"  frontend  ", "frontend"},
		{"nodejs", "nodejs"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TopicKey(tt.in); got != tt.want {
			t.Errorf("TopicKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
