package hydrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDecoderFromFixtures(t *testing.T) {
	fx := loadFixture(t, "hydrate_reminder_patch.json")

	for _, tc := range fx.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			decoder := NewDecoder[editPatch](buildOptions(tc)...)
			ctx := Context{ReminderID: tc.ReminderID, Mode: tc.Mode}

			result, err := decoder.Decode(ctx, tc.Input)

			if tc.ExpectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.ExpectErr)
				}
				if !strings.Contains(err.Error(), tc.ExpectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.ExpectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if !reflect.DeepEqual(tc.Expect, result) {
				t.Fatalf("decoded patch mismatch:\nwant: %#v\n got: %#v", tc.Expect, result)
			}
		})
	}
}

func TestDecoderRejectsNilPayload(t *testing.T) {
	_, err := NewDecoder[editPatch]().Decode(Context{ReminderID: "r-1"}, nil)
	if err == nil || !strings.Contains(err.Error(), "payload is nil for reminder r-1") {
		t.Fatalf("expected nil payload error, got %v", err)
	}
}

func TestDecoderLeavesCallerPayloadUntouched(t *testing.T) {
	payload := map[string]any{"dueDate": "2024-05-01T09:00:00Z"}
	decoder := NewDecoder(WithPreHook[editPatch](snakeKeysPreHook))
	if _, err := decoder.Decode(Context{}, payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := payload["dueDate"]; !ok {
		t.Fatalf("expected caller payload untouched, got %v", payload)
	}
}

func TestDecoderPreHookErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	decoder := NewDecoder(WithPreHook[editPatch](func(Context, map[string]any) (map[string]any, error) {
		return nil, boom
	}))
	_, err := decoder.Decode(Context{ReminderID: "r-9"}, map[string]any{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped pre-hook error, got %v", err)
	}
}

func buildOptions(tc fixtureCase) []DecoderOption[editPatch] {
	var options []DecoderOption[editPatch]
	for _, name := range tc.Options {
		if name == "disallow_unknown" {
			options = append(options, WithDisallowUnknownFields[editPatch]())
		}
	}
	for _, name := range tc.PreHooks {
		if name == "snake_keys" {
			options = append(options, WithPreHook[editPatch](snakeKeysPreHook))
		}
	}
	for _, name := range tc.PostHooks {
		switch name {
		case "trim_title":
			options = append(options, WithPostHook[editPatch](trimTitlePostHook))
		case "require_title":
			options = append(options, WithPostHook[editPatch](requireTitlePostHook))
		}
	}
	if tc.CustomDecoder == "text_as_title" {
		options = append(options, WithCustomDecoder[editPatch](textAsTitleDecoder))
	}
	return options
}

func snakeKeysPreHook(_ Context, payload map[string]any) (map[string]any, error) {
	if value, ok := payload["dueDate"]; ok {
		delete(payload, "dueDate")
		payload["due_date"] = value
	}
	return payload, nil
}

func trimTitlePostHook(_ Context, patch *editPatch) error {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	return nil
}

func requireTitlePostHook(ctx Context, patch *editPatch) error {
	if patch.Title == nil || *patch.Title == "" {
		return fmt.Errorf("reminder %s: title must not be empty", ctx.label())
	}
	return nil
}

func textAsTitleDecoder(ctx Context, payload map[string]any) (editPatch, error) {
	text, ok := payload["text"].(string)
	if !ok {
		return editPatch{}, fmt.Errorf("missing text for reminder %s", ctx.label())
	}
	return editPatch{Title: &text}, nil
}

type fixture struct {
	Description string        `json:"description"`
	Cases       []fixtureCase `json:"cases"`
}

type fixtureCase struct {
	Name          string         `json:"name"`
	ReminderID    string         `json:"reminderID"`
	Mode          string         `json:"mode"`
	Input         map[string]any `json:"input"`
	Expect        editPatch      `json:"expect"`
	ExpectErr     string         `json:"expectErr"`
	PreHooks      []string       `json:"preHooks"`
	PostHooks     []string       `json:"postHooks"`
	Options       []string       `json:"options"`
	CustomDecoder string         `json:"customDecoder"`
}

type editPatch struct {
	Title   *string    `json:"title,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("failed to read hydrate fixture %q: %v", name, err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal hydrate fixture %q: %v", name, err)
	}
	return fx
}
