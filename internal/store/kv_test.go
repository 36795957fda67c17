package store

import (
	"context"
	"reflect"
	"testing"
)

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": openTestStore(t).KV(),
		"memory": NewMemoryKV(),
	}
}

func TestKV_GetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
			}

			if err := kv.Set(ctx, "difficulty", "Easy"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, "difficulty", "Hard"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			v, ok, err := kv.Get(ctx, "difficulty")
			if err != nil || !ok || v != "Hard" {
				t.Errorf("Get(difficulty) = %q, %v, %v; want Hard", v, ok, err)
			}

			if err := kv.Delete(ctx, "difficulty", "never-set"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := kv.Get(ctx, "difficulty"); ok {
				t.Error("expected key to be deleted")
			}

			if err := kv.Delete(ctx); err != nil {
				t.Errorf("Delete with no keys: %v", err)
			}
		})
	}
}

func TestKV_Keys(t *testing.T) {
	ctx := context.Background()

	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"highScore_Medium", "soundEnabled", "highScore_Easy"} {
				if err := kv.Set(ctx, k, "1"); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			got, err := kv.Keys(ctx, "highScore_")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"highScore_Easy", "highScore_Medium"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Keys = %v, want %v", got, want)
			}

			all, err := kv.Keys(ctx, "")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("Keys(\"\") = %v, want 3 keys", all)
			}
		})
	}
}
