package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, args ...string) map[string]any {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("lifeline %s: %v", strings.Join(args, " "), err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("lifeline %s: bad JSON %q: %v", strings.Join(args, " "), out, err)
	}
	return payload
}

func TestInitSeedsDefaults(t *testing.T) {
	dir := t.TempDir()

	payload := mustRunCLI(t, "--dir", dir, "init", "--name", "Kim", "--birthdate", "1990-05-20")
	data := payload["data"].(map[string]any)
	if data["seededCategories"].(float64) != 5 {
		t.Fatalf("seededCategories = %v", data["seededCategories"])
	}

	payload = mustRunCLI(t, "--dir", dir, "categories", "list")
	cats := payload["data"].([]any)
	if len(cats) != 5 {
		t.Fatalf("categories = %d", len(cats))
	}
	first := cats[0].(map[string]any)
	if first["slug"] != "work" {
		t.Fatalf("first slug = %v", first["slug"])
	}

	payload = mustRunCLI(t, "--dir", dir, "profile", "show")
	profile := payload["data"].(map[string]any)
	if profile["birthdate"] != "1990-05-20" {
		t.Fatalf("birthdate = %v", profile["birthdate"])
	}
}

func TestEventLifecycleAndLayout(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "init")

	payload := mustRunCLI(t, "--dir", dir, "events", "add",
		"--title", "First flat",
		"--category", "housing",
		"--start", "2019-03-01",
		"--end", "2021-06-30",
	)
	ev := payload["data"].(map[string]any)
	id := ev["id"].(string)
	if !strings.HasPrefix(id, "ev-") {
		t.Fatalf("id = %q", id)
	}

	payload = mustRunCLI(t, "--dir", dir, "events", "layout", "--zoom", "1")
	rows := payload["data"].([]any)
	if len(rows) != 1 {
		t.Fatalf("layout rows = %d", len(rows))
	}
	row := rows[0].(map[string]any)
	if row["visible"] != true {
		t.Fatalf("row = %+v", row)
	}
	if row["width"].(float64) < 40 {
		t.Fatalf("width = %v, below the minimum", row["width"])
	}
	meta := payload["meta"].(map[string]any)
	if meta["zoom"].(float64) != 1.0 {
		t.Fatalf("zoom = %v", meta["zoom"])
	}

	// Direct show, then delete.
	payload = mustRunCLI(t, "--dir", dir, "events", "show", id)
	shown := payload["data"].(map[string]any)["event"].(map[string]any)
	if shown["title"] != "First flat" {
		t.Fatalf("title = %v", shown["title"])
	}

	mustRunCLI(t, "--dir", dir, "events", "delete", id)
	payload = mustRunCLI(t, "--dir", dir, "events", "list")
	if n := len(payload["data"].([]any)); n != 0 {
		t.Fatalf("events left = %d", n)
	}
}

func TestCategoriesMovePersistsOrder(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "init")

	mustRunCLI(t, "--dir", dir, "categories", "move", "work", "--down")

	payload := mustRunCLI(t, "--dir", dir, "categories", "list")
	cats := payload["data"].([]any)
	first := cats[0].(map[string]any)
	second := cats[1].(map[string]any)
	if first["slug"] != "housing" || second["slug"] != "work" {
		t.Fatalf("order = %v, %v", first["slug"], second["slug"])
	}

	// Moving the top lane further up is a no-op, not an error.
	payload = mustRunCLI(t, "--dir", dir, "categories", "move", "housing", "--up")
	meta := payload["meta"].(map[string]any)
	if meta["moved"] != false {
		t.Fatalf("meta = %v", meta)
	}
}

func TestFreePlanLimitsEnforced(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "init")

	// The seed already used 5 categories; the free plan allows 4, so adding
	// another must be refused outright.
	if _, err := runCLI(t, "--dir", dir, "categories", "add", "--name", "Extra"); err == nil {
		t.Fatal("category add beyond the free limit succeeded")
	}

	for i := 0; i < 10; i++ {
		mustRunCLI(t, "--dir", dir, "events", "add",
			"--title", fmt.Sprintf("Event %d", i),
			"--category", "work",
			"--start", fmt.Sprintf("20%02d-01-01", i+10),
		)
	}
	if _, err := runCLI(t, "--dir", dir, "events", "add",
		"--title", "One too many", "--category", "work", "--start", "2024-01-01"); err == nil {
		t.Fatal("event add beyond the free limit succeeded")
	}

	mustRunCLI(t, "--dir", dir, "subscription", "upgrade", "--code", "PREMIUM2024")
	mustRunCLI(t, "--dir", dir, "events", "add",
		"--title", "Premium event", "--category", "work", "--start", "2024-01-01")

	payload := mustRunCLI(t, "--dir", dir, "subscription", "status")
	data := payload["data"].(map[string]any)
	if data["plan"] != "premium" {
		t.Fatalf("plan = %v", data["plan"])
	}
}

func TestDoctorFlagsOrphans(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "init")
	mustRunCLI(t, "--dir", dir, "events", "add",
		"--title", "Job", "--category", "work", "--start", "2020-01-01")

	// Deleting is blocked while events reference the category, so doctor should
	// normally stay clean.
	payload := mustRunCLI(t, "--dir", dir, "doctor")
	meta := payload["meta"].(map[string]any)
	if meta["issues"].(float64) != 0 {
		t.Fatalf("issues = %v", meta["issues"])
	}
}
