package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"craftvival/internal/app/action"
	"craftvival/internal/app/observe"
	"craftvival/internal/app/replay"
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	state := survival.NewPlayerState("p1", 5, 5)
	state.Inventory.Add(survival.ItemAndCount{Item: survival.Wood, Count: 2})
	state.Version = 3
	book, err := survival.NewBook(survival.DefaultRecipes())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	view := stateview.Project(state, book)
	snap := stateview.SnapshotOf(state)
	event := survival.DomainEvent{
		ID:         "e1",
		Type:       survival.EventItemPickedUp,
		OccurredAt: now,
		Payload:    map[string]any{"ok": true},
	}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name:    "observe",
			payload: observe.Response{View: view, Known: true, ObservedAt: now},
			want:    []string{"view", "known", "observed_at"},
			notWant: []string{"View", "ObservedAt"},
		},
		{
			name:    "action",
			payload: action.Response{ResultCode: survival.ResultOK, View: view, Events: []survival.DomainEvent{event}},
			want:    []string{"result_code", "outcome", "view", "events"},
			notWant: []string{"ResultCode", "View", "Events"},
		},
		{
			name:    "replay",
			payload: replay.Response{Events: []survival.DomainEvent{event}, LatestInventory: &snap},
			want:    []string{"events", "latest_inventory"},
			notWant: []string{"Events", "LatestInventory"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if v, ok := got["view"]; ok {
				viewMap := asMap(v)
				for _, key := range []string{"player_id", "stack_limit", "free_slots", "slots", "totals", "equipped", "craftable"} {
					if _, ok := viewMap[key]; !ok {
						t.Fatalf("expected nested key view.%s in %s", key, string(b))
					}
				}
			}
		})
	}
}

func TestItemTypesEncodeAsText(t *testing.T) {
	b, err := json.Marshal(survival.ItemAndCount{Item: survival.Axe, Count: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"item":"tool:axe","count":1}`; got != want {
		t.Fatalf("encoding mismatch: got=%s want=%s", got, want)
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
