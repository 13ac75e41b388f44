package flagstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/testutil"
)

func TestStore_StandIn(t *testing.T) {
	store := New(testutil.StandInSource())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	flag, persisted, err := store.Create(ctx, CreateInput{Team: "blue", Key: "dark-mode", Name: "Dark mode"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if persisted {
		t.Error("persisted = true on stand-in")
	}
	if flag.ID != dbhandle.MockInsertedID {
		t.Errorf("ID = %q, want %q", flag.ID, dbhandle.MockInsertedID)
	}

	flags, live, err := store.List(ctx, "blue")
	if err != nil || len(flags) != 0 {
		t.Errorf("List() = %v, %v; want empty", flags, err)
	}
	if live {
		t.Error("List() reported live on stand-in")
	}
	if _, err := store.Get(ctx, flag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := store.SetEnabled(ctx, flag.ID, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetEnabled() error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, flag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	store := New(testutil.StandInSource())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing team", CreateInput{Key: "a"}},
		{"missing key", CreateInput{Team: "t"}},
		{"bad key", CreateInput{Team: "t", Key: "Has Spaces"}},
		{"leading dash", CreateInput{Team: "t", Key: "-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := store.Create(ctx, tt.in); !errors.Is(err, ErrInvalid) {
				t.Errorf("Create() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestStore_Create_Sanitizes(t *testing.T) {
	store := New(testutil.StandInSource())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	flag, _, err := store.Create(ctx, CreateInput{
		Team:        "blue",
		Key:         "  Quiz-V2 ",
		Name:        "<b>Quiz</b> v2<script>x()</script>",
		Description: `New <em>quiz</em> engine<img src=x onerror=alert(1)>`,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if flag.Key != "quiz-v2" {
		t.Errorf("Key = %q, want %q", flag.Key, "quiz-v2")
	}
	if flag.Name != "Quiz v2" {
		t.Errorf("Name = %q, want %q", flag.Name, "Quiz v2")
	}
	if flag.Description != "New <em>quiz</em> engine" {
		t.Errorf("Description = %q", flag.Description)
	}
}

func TestStore_Live(t *testing.T) {
	store := New(testutil.LiveSource(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	flag, persisted, err := store.Create(ctx, CreateInput{Team: "red", Key: "beta-search", Name: "Beta search", CreatedBy: "uid-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !persisted {
		t.Error("persisted = false on live database")
	}

	got, err := store.Get(ctx, flag.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Key != "beta-search" || got.Team != "red" || got.Enabled {
		t.Errorf("Get() = %+v", got)
	}

	if err := store.SetEnabled(ctx, flag.ID, true); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	got, _ = store.Get(ctx, flag.ID)
	if !got.Enabled {
		t.Error("Enabled = false after SetEnabled(true)")
	}

	if _, _, err := store.Create(ctx, CreateInput{Team: "red", Key: "beta-search"}); err == nil {
		t.Error("expected duplicate key error for same team and key")
	}
	if _, _, err := store.Create(ctx, CreateInput{Team: "green", Key: "other"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	red, live, err := store.List(ctx, "red")
	if err != nil || len(red) != 1 {
		t.Errorf("List(red) = %d flags, %v; want 1", len(red), err)
	}
	if !live {
		t.Error("List(red) reported stand-in on live database")
	}
	all, _, err := store.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Errorf("List() = %d flags, %v; want 2", len(all), err)
	}

	if err := store.Delete(ctx, flag.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, flag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
