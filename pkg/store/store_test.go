package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/smallfx/luna/pkg/luna"
	"github.com/smallfx/luna/pkg/store"
)

// forEachStore runs the test against the in-memory and the in-memory
// badger backends.
func forEachStore(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		s := store.NewMemory()
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})

	t.Run("badger", func(t *testing.T) {
		s, err := store.NewBadger(store.BadgerOptions{InMemory: true})
		if err != nil {
			t.Fatalf("NewBadger: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func TestPutGetDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		nested := luna.NewTable()
		nested.SetField("langs", luna.FromAny([]any{"go", "lua"}))
		nested.SetField("level", luna.Number(3))

		if _, err := s.Get(ctx, "profile"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Get on empty store: %v, want ErrNotFound", err)
		}

		if err := s.Put(ctx, "profile", nested); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get(ctx, "profile")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !luna.Equal(got, nested) {
			t.Errorf("Get = %v, want %v", got, nested)
		}

		// Overwrite.
		if err := s.Put(ctx, "profile", luna.String("v2")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err = s.Get(ctx, "profile")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Text() != "v2" {
			t.Errorf("Get after overwrite = %v", got)
		}

		if err := s.Delete(ctx, "profile"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, "profile"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get after delete: %v, want ErrNotFound", err)
		}

		// Deleting a missing key is not an error.
		if err := s.Delete(ctx, "missing"); err != nil {
			t.Errorf("Delete missing key: %v", err)
		}
	})
}

func TestScalarKinds(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		tests := []struct {
			key string
			v   luna.Value
		}{
			{"nil", luna.Nil()},
			{"bool", luna.Bool(true)},
			{"number", luna.Number(-2.5)},
			{"string", luna.String("hello")},
		}
		for _, tt := range tests {
			if err := s.Put(ctx, tt.key, tt.v); err != nil {
				t.Fatalf("Put(%s): %v", tt.key, err)
			}
			got, err := s.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get(%s): %v", tt.key, err)
			}
			if !luna.Equal(got, tt.v) {
				t.Errorf("Get(%s) = %v, want %v", tt.key, got, tt.v)
			}
		}
	})
}

func TestErrorValueStoresAsNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		if err := s.Put(ctx, "e", luna.Errorf("boom")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get(ctx, "e")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !got.IsNil() {
			t.Errorf("stored error value reads back as %v, want nil", got)
		}
	})
}

func TestKeys(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		for _, k := range []string{"user:b", "user:a", "other"} {
			if err := s.Put(ctx, k, luna.Number(1)); err != nil {
				t.Fatalf("Put(%s): %v", k, err)
			}
		}

		keys, err := s.Keys(ctx, "user:")
		if err != nil {
			t.Fatalf("Keys: %v", err)
		}
		want := []string{"user:a", "user:b"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("Keys = %v, want %v", keys, want)
		}

		all, err := s.Keys(ctx, "")
		if err != nil {
			t.Fatalf("Keys: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Keys(\"\") = %v, want 3 entries", all)
		}
	})
}
