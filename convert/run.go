package convert

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"verso/config"
	"verso/doc"
	"verso/state"
	"verso/verse"
)

//go:embed default.css
var defaultStylesheet []byte

// stylesheetName is the file written next to html outputs and referenced
// from their head.
const stylesheetName = "default.css"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to html", zap.Error(err))
		format = config.OutputFmtHtml
	}

	env.DefaultStyle = defaultStylesheet
	if env.Cfg.Document.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Document.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Document.StylesheetPath, err)
		}
		env.DefaultStyle = data
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process determines the input type (directory or single file) and converts
// accordingly.
func process(ctx context.Context, src, dst string, format config.OutputFmt, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, format, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return processFile(ctx, src, filepath.Base(src), dst, format, log)
}

// processDir walks the directory tree converting every document file found.
// Files are processed in natural order so runs are deterministic, per file
// failures are collected and do not stop the remaining work.
func processDir(ctx context.Context, dir, dst string, format config.OutputFmt, log *zap.Logger) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		if !isDocumentFile(path) {
			log.Debug("Skipping file, not recognized as document", zap.String("file", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}
	sort.Sort(natural.StringSlice(files))

	var errs error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, path, src, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", src, err))
		}
	}
	return errs
}

// processFile converts a single document. "src" is the source path relative
// to the original input (just the base name when a file was specified
// directly), it shapes the output location.
func processFile(ctx context.Context, path, src, dst string, format config.OutputFmt, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	d, err := doc.Parse(file, log)
	if err != nil {
		return fmt.Errorf("unable to parse document (%s): %w", src, err)
	}

	verse.Apply(d, format, log)

	outputName := buildOutputPath(src, dst, format, env)
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeOutput(outputName, d, format, env); err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	return nil
}

func writeOutput(outputName string, d *doc.Document, format config.OutputFmt, env *state.LocalEnv) error {
	out, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case config.OutputFmtHtml:
		if err := writeStylesheet(filepath.Dir(outputName), env); err != nil {
			return err
		}
		return doc.WriteHTML(out, d, stylesheetName)
	case config.OutputFmtLatex:
		return doc.WriteLaTeX(out, d)
	default:
		return doc.WritePlain(out, d)
	}
}

// writeStylesheet drops the stylesheet next to html output once, existing
// file wins unless overwrite was requested.
func writeStylesheet(dir string, env *state.LocalEnv) error {
	name := filepath.Join(dir, stylesheetName)
	if _, err := os.Stat(name); err == nil && !env.Overwrite {
		return nil
	} else if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(name, env.DefaultStyle, 0644)
}

// isDocumentFile recognizes document sources by extension.
func isDocumentFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
