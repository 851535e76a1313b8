package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leozex777/syncschwab/internal/cache"
)

func TestPage_PriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		st   UIState
		want Page
	}{
		{"zero state is dashboard", UIState{}, PageDashboard},
		{"main account edit wins over everything",
			UIState{ShowMainAccountEdit: true, ShowClientManagement: true, ShowSynchronization: true, ShowLogViewer: true, SelectedClientID: "slave_1"},
			PageMainAccountEdit},
		{"client management over sync",
			UIState{ShowClientManagement: true, ShowSynchronization: true},
			PageClientManagement},
		{"sync over log viewer",
			UIState{ShowSynchronization: true, ShowLogViewer: true},
			PageSynchronization},
		{"log viewer over client detail",
			UIState{ShowLogViewer: true, SelectedClientID: "slave_1"},
			PageLogViewer},
		{"selected client resolves detail",
			UIState{SelectedClientID: "slave_1"},
			PageClientDetail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.st.Page(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ui_state.json")
	s := NewStore(path, cache.NewMemory("ui", time.Minute))

	// Sin archivo: estado cero.
	st, err := s.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Page() != PageDashboard {
		t.Fatalf("expected dashboard, got %q", st.Page())
	}

	want := UIState{ShowSynchronization: true}
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	// Releer con cache frío.
	fresh := NewStore(path, nil)
	got, err := fresh.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Page() != PageSynchronization {
		t.Fatalf("persisted state lost: %+v", got)
	}
}

func TestStore_CorruptFileResets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ui_state.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path, nil)
	st, err := s.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Page() != PageDashboard {
		t.Fatalf("corrupt state must reset to dashboard, got %q", st.Page())
	}
}
