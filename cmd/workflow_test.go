package cmd

import (
	"bufio"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/fanchart/internal/ansi"
)

const lindsTOML = `
[[person]]
id = "erik"
gender = "male"
given = "Erik"
surname = "Lind"
birth = 1950

[[person]]
id = "olof"
gender = "male"
given = "Olof"
surname = "Lind"
birth = 1920
death = 1990

[[person]]
id = "karin"
gender = "female"
given = "Karin"
surname = "Berg"

[[family]]
father = "olof"
mother = "karin"
children = ["erik"]

[[template]]
name = "apa"
descr = "APA style"

[[template.element]]
name = "[AUTHOR]"
citation = true
`

// importLinds creates a database holding three people and returns its path
// and the handle of erik.
func importLinds(t *testing.T) (db, erik string) {
	t.Helper()
	dir := t.TempDir()
	db = filepath.Join(dir, "fanchart.db")
	file := filepath.Join(dir, "linds.toml")
	if err := os.WriteFile(file, []byte(lindsTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, err := execute(t, "init", "--db", db); err != nil {
		t.Fatalf("init: %v\n%s", err, stderr)
	}
	_, stderr, err := execute(t, "import", "--db", db, "-v", file)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "3 people") || !strings.Contains(stderr, "1 family") {
		t.Errorf("import report = %q", stderr)
	}

	sc := bufio.NewScanner(strings.NewReader(stderr))
	for sc.Scan() {
		if _, after, ok := strings.Cut(sc.Text(), "erik -> "); ok {
			erik = strings.TrimSuffix(after, ansi.Reset)
		}
	}
	if erik == "" {
		t.Fatalf("no handle for erik in %q", stderr)
	}
	return db, erik
}

func TestInitReportsEmptyDatabase(t *testing.T) {
	// Not parallel: runs rootCmd.
	db := filepath.Join(t.TempDir(), "new.db")
	_, stderr, err := execute(t, "init", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "0 people") {
		t.Errorf("stderr = %q, want an empty database report", stderr)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestShowListsAncestors(t *testing.T) {
	db, erik := importLinds(t)

	stdout, stderr, err := execute(t, "show", "--db", db, "--root", erik, "--generations", "3")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, stderr)
	}
	for _, want := range []string{"Erik Lind", "Olof Lind", "Karin Berg", "1st generation"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRender(t *testing.T) {
	db, erik := importLinds(t)
	dir := t.TempDir()
	events := filepath.Join(dir, "events.jsonl")
	t.Setenv("FANCHART_TELEMETRY", events)

	t.Run("png", func(t *testing.T) {
		out := filepath.Join(dir, "chart.png")
		_, stderr, err := execute(t, "render", "--db", db, "--root", erik, "--out", out,
			"--generations", "3", "--scale", "1")
		if err != nil {
			t.Fatalf("render: %v\n%s", err, stderr)
		}
		f, err := os.Open(out)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
			t.Errorf("empty image %v", b)
		}
		if !strings.Contains(stderr, "rendered") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("svg", func(t *testing.T) {
		out := filepath.Join(dir, "chart.svg")
		if _, stderr, err := execute(t, "render", "--db", db, "--root", erik, "--out", out, "--form", "half-circle"); err != nil {
			t.Fatalf("render: %v\n%s", err, stderr)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "</svg>") {
			t.Errorf("not an svg document: %.80s", data)
		}
	})

	t.Run("telemetry", func(t *testing.T) {
		data, err := os.ReadFile(events)
		if err != nil {
			t.Fatal(err)
		}
		if n := strings.Count(string(data), `"kind":"exported"`); n != 2 {
			t.Errorf("%d exported events, want 2:\n%s", n, data)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := execute(t, "render", "--db", db, "--root", erik, "--out", filepath.Join(dir, "chart.gif"))
		if err == nil || !strings.Contains(err.Error(), "unsupported format") {
			t.Errorf("err = %v, want unsupported format", err)
		}
	})

	t.Run("unknown root", func(t *testing.T) {
		_, _, err := execute(t, "render", "--db", db, "--root", "nobody", "--out", filepath.Join(dir, "x.png"))
		if !errors.Is(err, errNoPerson) {
			t.Errorf("err = %v, want errNoPerson", err)
		}
	})
}

func TestPersonCommands(t *testing.T) {
	db, erik := importLinds(t)

	stdout, stderr, err := execute(t, "person", "add-parents", "--db", db, erik, "--mother-given", "Greta")
	if err != nil {
		t.Fatalf("add-parents: %v\n%s", err, stderr)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("add-parents printed no family handle")
	}

	if _, stderr, err := execute(t, "person", "rename", "--db", db, erik, "--given", "Erika"); err != nil {
		t.Fatalf("rename: %v\n%s", err, stderr)
	}

	stdout, stderr, err = execute(t, "person", "add", "--db", db, "--given", "Anna", "--surname", "Holm", "--gender", "female")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, stderr)
	}
	anna := strings.TrimSpace(stdout)
	stdout, stderr, err = execute(t, "person", "add-partner", "--db", db, anna, "--given", "Per", "--surname", "Ek", "--gender", "male")
	if err != nil {
		t.Fatalf("add-partner: %v\n%s", err, stderr)
	}
	fam := strings.TrimSpace(stdout)
	if _, stderr, err := execute(t, "person", "add-child", "--db", db, fam, "--given", "Lisa"); err != nil {
		t.Fatalf("add-child: %v\n%s", err, stderr)
	}

	list, _, err := execute(t, "person", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Erika Lind", "Greta", "Anna Holm", "Per Ek", "Lisa Ek"} {
		if !strings.Contains(list, want) {
			t.Errorf("person list missing %q:\n%s", want, list)
		}
	}
	// The new father takes erik's surname.
	if n := strings.Count(list, " Lind"); n != 3 {
		t.Errorf("%d people named Lind, want 3:\n%s", n, list)
	}

	if _, _, err := execute(t, "person", "rename", "--db", db, erik); err == nil {
		t.Error("rename without changes succeeded")
	}
}

func TestTemplateCommands(t *testing.T) {
	db, _ := importLinds(t)

	if _, stderr, err := execute(t, "template", "set", "--db", db, "apa", "separator", ", "); err != nil {
		t.Fatalf("set: %v\n%s", err, stderr)
	}
	if _, stderr, err := execute(t, "template", "set", "--db", db, "mla", "separator", ". "); err != nil {
		t.Fatalf("set new: %v\n%s", err, stderr)
	}

	list, _, err := execute(t, "template", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if list != "apa\nmla\n" {
		t.Errorf("template list = %q", list)
	}

	show, _, err := execute(t, "template", "show", "--db", db, "apa")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"APA style", "[AUTHOR]", `separator = ", "`} {
		if !strings.Contains(show, want) {
			t.Errorf("template show missing %q:\n%s", want, show)
		}
	}

	if _, _, err := execute(t, "template", "set", "--db", db, "--delete", "apa", "separator"); err != nil {
		t.Fatal(err)
	}
	show, _, _ = execute(t, "template", "show", "--db", db, "apa")
	if strings.Contains(show, "separator") {
		t.Errorf("separator not deleted:\n%s", show)
	}

	if _, _, err := execute(t, "template", "show", "--db", db, "chicago"); err == nil {
		t.Error("show of a missing template succeeded")
	}
}
