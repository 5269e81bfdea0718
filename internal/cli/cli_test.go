package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/record"
	"github.com/matzehuels/svgstack/pkg/store"
	"github.com/matzehuels/svgstack/pkg/svg"
)

const (
	docA = `<svg xmlns="http://www.w3.org/2000/svg" width="100pt" height="50pt" viewBox="0 0 100 50"><rect width="100" height="50" fill="red"/></svg>`
	docB = `<svg xmlns="http://www.w3.org/2000/svg" width="80pt" height="60pt" viewBox="0 0 80 60"><circle cx="40" cy="30" r="20" fill="blue"/></svg>`
)

// run executes the root command with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// workdir writes the sample documents into a fresh directory and points the
// artifact cache at it.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for name, content := range map[string]string{"a.svg": docA, "b.svg": docB} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestStackCommand(t *testing.T) {
	dir := workdir(t)
	a, b := filepath.Join(dir, "a.svg"), filepath.Join(dir, "b.svg")

	tests := []struct {
		name       string
		args       []string
		wantWidth  string
		wantHeight string
	}{
		{"vertical", nil, "100pt", "110pt"},
		{"horizontal", []string{"--horizontal"}, "180pt", "60pt"},
		{"no separator", []string{"--separator=false", "--no-cache"}, "100pt", "110pt"},
		{"minified", []string{"--minify"}, "100pt", "110pt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"stack", a, b}, tt.args...)...)
			if err != nil {
				t.Fatalf("stack error: %v", err)
			}
			doc, err := svg.Parse(out)
			if err != nil {
				t.Fatalf("stack output does not parse: %v", err)
			}
			if doc.Width() != tt.wantWidth || doc.Height() != tt.wantHeight {
				t.Errorf("size = %s x %s, want %s x %s", doc.Width(), doc.Height(), tt.wantWidth, tt.wantHeight)
			}
		})
	}

	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(dir, "out", "stacked.svg")
		out, err := run(t, "stack", a, b, "-o", path)
		if err != nil {
			t.Fatal(err)
		}
		if out != "" {
			t.Errorf("stdout = %q, want nothing when writing a file", out)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	})

	t.Run("unit mismatch", func(t *testing.T) {
		_, err := run(t, "stack", a, b, "--unit", "px")
		if !errors.Is(err, errors.ErrCodeInvalidDimension) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidDimension)
		}
	})
}

func TestRescaleCommand(t *testing.T) {
	dir := workdir(t)

	out, err := run(t, "rescale", filepath.Join(dir, "a.svg"), "--scale", "2")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := svg.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width() != "200px" || doc.Height() != "100px" {
		t.Errorf("size = %s x %s, want 200px x 100px", doc.Width(), doc.Height())
	}

	if _, err := run(t, "rescale", filepath.Join(dir, "a.svg"), "--scale", "0"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("scale 0 error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
}

func TestPNGCommandTag(t *testing.T) {
	dir := workdir(t)

	out, err := run(t, "png", filepath.Join(dir, "a.svg"), "--tag", "--dpi", "72")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, `<img src="data:image/png;base64,`) || !strings.HasSuffix(out, "\">\n") {
		t.Errorf("png --tag output = %.60q...", out)
	}
}

func TestPNGCommandRefusesTerminal(t *testing.T) {
	dir := workdir(t)
	prev := terminalOut
	terminalOut = func(io.Writer) bool { return true }
	t.Cleanup(func() { terminalOut = prev })

	out, err := run(t, "png", filepath.Join(dir, "a.svg"), "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("png to terminal error = %v, want %v", err, errors.ErrCodeInvalidArgument)
	}
	if out != "" {
		t.Errorf("png to terminal wrote %d bytes", len(out))
	}

	out, err = run(t, "png", filepath.Join(dir, "a.svg"), "--no-cache", "--tag")
	if err != nil {
		t.Fatalf("png --tag to terminal: %v", err)
	}
	if !strings.HasPrefix(out, "<img ") {
		t.Errorf("png --tag output = %.30q", out)
	}
}

func TestRecordCommand(t *testing.T) {
	dir := workdir(t)
	csv := filepath.Join(dir, "curve.csv")
	if err := os.WriteFile(csv, []byte("t,flux\n0,1\n1,4\n2,9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("plain static", func(t *testing.T) {
		out, err := run(t, "record", filepath.Join(dir, "a.svg"), "--compress", "0", "--title", "A", "--tag", "X", "--tag", "Y")
		if err != nil {
			t.Fatal(err)
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(out), &rec); err != nil {
			t.Fatalf("record output is not a record: %v", err)
		}
		text, ok := rec.Text()
		if rec.Name != "a.svg" || rec.Title != "A" || !ok || text != docA {
			t.Errorf("record = %+v", rec)
		}
		if strings.Join(rec.Tags, ",") != "X,Y" {
			t.Errorf("tags = %v, want [X Y]", rec.Tags)
		}
	})

	t.Run("compressed table round trip", func(t *testing.T) {
		recPath := filepath.Join(dir, "curve.json")
		if _, err := run(t, "record", csv, "--name", "curve.svg", "--width", "4", "--height", "3", "-o", recPath); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(recPath)
		if err != nil {
			t.Fatal(err)
		}
		var rec record.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatal(err)
		}
		if !rec.IsCompressed() {
			t.Fatal("default record should be compressed")
		}

		out, err := run(t, "decompress", recPath, "--svg", "-")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "<svg") {
			t.Errorf("decompressed SVG = %.60q...", out)
		}
	})

	t.Run("store and disk save", func(t *testing.T) {
		storeDir := filepath.Join(dir, "records")
		saveDir := filepath.Join(dir, "saved")
		if _, err := run(t, "record", filepath.Join(dir, "b.svg"), "--store", storeDir, "--disk-save", saveDir); err != nil {
			t.Fatal(err)
		}

		st, err := store.NewFileStore(storeDir)
		if err != nil {
			t.Fatal(err)
		}
		rec, err := st.Get(context.Background(), "b.svg")
		if err != nil {
			t.Fatalf("stored record missing: %v", err)
		}
		if !rec.IsCompressed() {
			t.Error("stored record should be compressed")
		}
		saved, err := os.ReadFile(filepath.Join(saveDir, "b.svg"))
		if err != nil || string(saved) != docB {
			t.Errorf("disk copy = %q, %v", saved, err)
		}
	})

	t.Run("properties", func(t *testing.T) {
		props := filepath.Join(dir, "plot.toml")
		toml := `
file_name = { format = "%v_curve.svg", arg_keys = ["stock"] }
title = { format = "Curve of %v", arg_keys = ["stock"] }
tags = ["SCIENCE"]
compress = 2
`
		if err := os.WriteFile(props, []byte(toml), 0644); err != nil {
			t.Fatal(err)
		}
		out, err := run(t, "record", csv, "--props", props, "--arg", "stock=ZTF1")
		if err != nil {
			t.Fatal(err)
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(out), &rec); err != nil {
			t.Fatal(err)
		}
		if rec.Name != "ZTF1_curve.svg" || rec.Title != "Curve of ZTF1" {
			t.Errorf("name, title = %q, %q", rec.Name, rec.Title)
		}
		if !rec.IsCompressed() || rec.SVGText == "" {
			t.Error("mode 2 should keep both the compressed payload and the text")
		}
	})

	t.Run("errors", func(t *testing.T) {
		bad := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(bad, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, "record", bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("unsupported input error = %v", err)
		}
		if _, err := run(t, "record", csv, "--compress", "3"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("--compress 3 error = %v", err)
		}
	})
}

func TestDecompressPassesPlainRecords(t *testing.T) {
	dir := workdir(t)
	path := filepath.Join(dir, "plain.json")
	rec := record.Record{Name: "a.svg", SVG: record.Text(docA), Title: "A"}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "decompress", path)
	if err != nil {
		t.Fatal(err)
	}
	var got record.Record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if text, _ := got.Text(); got.Name != "a.svg" || text != docA {
		t.Errorf("decompress changed a plain record: %+v", got)
	}
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"stock=ZTF1", "band=g=r"})
	if err != nil {
		t.Fatal(err)
	}
	if got["stock"] != "ZTF1" || got["band"] != "g=r" {
		t.Errorf("parseArgs() = %v", got)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseArgs([]string{bad}); err == nil {
			t.Errorf("parseArgs(%q) should fail", bad)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := workdir(t)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := run(t, "rescale", filepath.Join(dir, "a.svg"), "--scale", "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
