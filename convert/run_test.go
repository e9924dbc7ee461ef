package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"verso/config"
	"verso/state"
)

const sampleDocument = `<document title="Sample">
	<p>Before.</p>
	<div class="verse" title="Ode" linenumbers="4">
		<p>Line A<br/>Line B</p>
		<p>Line C</p>
	</div>
	<p>After.</p>
</document>`

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t)
	env.DefaultStyle = defaultStylesheet
	return ctx
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sampleDocument), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildOutputPath(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)

	t.Run("keeps source directories", func(t *testing.T) {
		got := buildOutputPath(filepath.Join("sub", "poem.xml"), "/out", config.OutputFmtHtml, env)
		if got != filepath.Join("/out", "sub", "poem.html") {
			t.Errorf("got %s", got)
		}
	})

	t.Run("nodirs flattens", func(t *testing.T) {
		env.NoDirs = true
		defer func() { env.NoDirs = false }()
		got := buildOutputPath(filepath.Join("sub", "poem.xml"), "/out", config.OutputFmtLatex, env)
		if got != filepath.Join("/out", "poem.tex") {
			t.Errorf("got %s", got)
		}
	})

	t.Run("transliterates file name", func(t *testing.T) {
		env.Cfg.Document.FileNameTransliterate = true
		defer func() { env.Cfg.Document.FileNameTransliterate = false }()
		got := buildOutputPath("Книга.xml", "/out", config.OutputFmtTxt, env)
		if got != filepath.Join("/out", "kniga.txt") {
			t.Errorf("got %s", got)
		}
	})
}

func TestProcessFile(t *testing.T) {
	t.Run("html output with stylesheet", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		path := writeSample(t, srcDir, "poem.xml")

		err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtHtml, zaptest.NewLogger(t))
		if err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(filepath.Join(dstDir, "poem.html"))
		if err != nil {
			t.Fatal(err)
		}
		got := string(data)
		for _, want := range []string{
			`class="verse line-numbered linenums-right"`,
			`<div class="verse-title">Ode</div>`,
			`href="default.css"`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %s in output", want)
			}
		}
		if n := strings.Count(got, `class="stanza"`); n != 2 {
			t.Errorf("expected 2 stanzas, got %d", n)
		}
		if _, err := os.Stat(filepath.Join(dstDir, "default.css")); err != nil {
			t.Errorf("stylesheet not written: %v", err)
		}
	})

	t.Run("latex output", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		path := writeSample(t, srcDir, "poem.xml")

		if err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtLatex, zaptest.NewLogger(t)); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(dstDir, "poem.tex"))
		if err != nil {
			t.Fatal(err)
		}
		got := string(data)
		for _, want := range []string{
			`\poemtitle{Ode}`,
			`\begin{verse}[\versewidth]`,
			`\poemlines{4}`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %s in output", want)
			}
		}
	})

	t.Run("plain text output", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		path := writeSample(t, srcDir, "poem.xml")

		if err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtTxt, zaptest.NewLogger(t)); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(dstDir, "poem.txt"))
		if err != nil {
			t.Fatal(err)
		}
		got := string(data)
		if !strings.Contains(got, "Ode") {
			t.Errorf("fallback title missing in %q", got)
		}
		if !strings.Contains(got, "        Line A\n        Line B\n") {
			t.Errorf("verse lines not indented in %q", got)
		}
	})

	t.Run("refuses to overwrite by default", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		path := writeSample(t, srcDir, "poem.xml")

		log := zaptest.NewLogger(t)
		if err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtTxt, log); err != nil {
			t.Fatal(err)
		}
		if err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtTxt, log); err == nil {
			t.Fatal("expected existing output error")
		}
		state.EnvFromContext(ctx).Overwrite = true
		if err := processFile(ctx, path, "poem.xml", dstDir, config.OutputFmtTxt, log); err != nil {
			t.Fatalf("overwrite should succeed: %v", err)
		}
	})
}

func TestProcessDir(t *testing.T) {
	t.Run("mirrors directory structure", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		writeSample(t, srcDir, "one.xml")
		writeSample(t, srcDir, filepath.Join("nested", "two.xml"))
		writeSample(t, srcDir, "ignored.txt")

		if err := processDir(ctx, srcDir, dstDir, config.OutputFmtHtml, zaptest.NewLogger(t)); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{
			"one.html",
			filepath.Join("nested", "two.html"),
		} {
			if _, err := os.Stat(filepath.Join(dstDir, name)); err != nil {
				t.Errorf("missing output %s: %v", name, err)
			}
		}
		if _, err := os.Stat(filepath.Join(dstDir, "ignored.html")); err == nil {
			t.Error("non document file should be skipped")
		}
	})

	t.Run("aggregates per file errors", func(t *testing.T) {
		ctx := testContext(t)
		srcDir, dstDir := t.TempDir(), t.TempDir()
		writeSample(t, srcDir, "good.xml")
		if err := os.WriteFile(filepath.Join(srcDir, "bad.xml"), []byte("<document><p>"), 0644); err != nil {
			t.Fatal(err)
		}

		err := processDir(ctx, srcDir, dstDir, config.OutputFmtTxt, zaptest.NewLogger(t))
		if err == nil {
			t.Fatal("expected aggregated error")
		}
		if !strings.Contains(err.Error(), "bad.xml") {
			t.Errorf("error should name the failing file: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dstDir, "good.txt")); err != nil {
			t.Errorf("good file should still convert: %v", err)
		}
	})

	t.Run("empty directory is not an error", func(t *testing.T) {
		ctx := testContext(t)
		if err := processDir(ctx, t.TempDir(), t.TempDir(), config.OutputFmtHtml, zaptest.NewLogger(t)); err != nil {
			t.Fatal(err)
		}
	})
}
