package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
)

func TestTopN(t *testing.T) {
	items := []*core.Item{core.NewItem("1"), core.NewItem("2"), core.NewItem("3")}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"short input untouched", 5, 3},
		{"zero disables", 0, 3},
		{"negative disables", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if len(got) > 0 && got[0].ID != "1" {
				t.Fatalf("order changed: first = %s", got[0].ID)
			}
		})
	}
}
