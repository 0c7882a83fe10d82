// Package tool implements the dcx subcommands on top of the docx package
// and the edit engine.
package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dcx/config"
	"dcx/docx"
	"dcx/edit"
	"dcx/state"
)

// Text extracts the visible text of a document to stdout or a destination
// file.
func Text(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("text")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}

	pkg, err := docx.ReadPackage(src, log)
	if err != nil {
		return fmt.Errorf("unable to open document: %w", err)
	}

	out := os.Stdout
	if fname := cmd.Args().Get(1); len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if _, err := fmt.Fprintln(out, pkg.Doc.Text()); err != nil {
		return fmt.Errorf("unable to write text: %w", err)
	}
	return nil
}

// Bookmarks lists all bookmarks of a document with their character
// positions, in natural name order.
func Bookmarks(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("bookmarks")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}

	pkg, err := docx.ReadPackage(src, log)
	if err != nil {
		return fmt.Errorf("unable to open document: %w", err)
	}

	bookmarks := pkg.Doc.Bookmarks()
	names := make([]string, 0, len(bookmarks))
	positions := make(map[string]int, len(bookmarks))
	for _, b := range bookmarks {
		names = append(names, b.Name)
		positions[b.Name] = b.Position
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		fmt.Printf("%s\t%d\n", name, positions[name])
	}
	log.Info("Listed bookmarks", zap.Int("count", len(names)))
	return nil
}

// Replace applies find and replace rules - from the command line and from
// the configuration - to every paragraph of a document and saves the result.
func Replace(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("replace")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}

	rules := env.Cfg.Editing.Rules
	if search := cmd.String("search"); len(search) > 0 {
		rules = append(rules, ruleFromFlags(cmd))
	}
	if len(rules) == 0 {
		return errors.New("no replacement rules: give --search/--replace or configure editing.rules")
	}

	pkg, err := docx.ReadPackage(src, log)
	if err != nil {
		return fmt.Errorf("unable to open document: %w", err)
	}

	session := edit.NewSession(pkg.Doc, log)
	if env.Cfg.Editing.Author != "" {
		session.SetAuthor(env.Cfg.Editing.Author)
	}

	total := 0
	for _, rule := range rules {
		opts := &edit.ReplaceOptions{
			Regex:            rule.Regex,
			UseSubstitutions: rule.UseSubstitutions,
		}
		// paragraphs are processed back to front so pruning an emptied
		// paragraph does not shift the ones still pending
		for i := len(pkg.Doc.Paragraphs) - 1; i >= 0; i-- {
			n, err := session.ReplaceText(pkg.Doc.Paragraphs[i], rule.Search, rule.Replace, opts)
			if err != nil {
				return fmt.Errorf("unable to apply rule %q: %w", rule.Search, err)
			}
			total += n
		}
	}
	log.Info("Applied replacement rules", zap.Int("rules", len(rules)), zap.Int("replacements", total))

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = derivedOutputPath(src)
	}
	if _, err := os.Stat(dst); err == nil && !env.Overwrite {
		return fmt.Errorf("destination '%s' already exists, use --overwrite", dst)
	}

	if err := pkg.Save(dst, log); err != nil {
		return fmt.Errorf("unable to save document: %w", err)
	}
	log.Info("Saved document", zap.String("output", dst))
	return nil
}

func ruleFromFlags(cmd *cli.Command) config.ReplaceRule {
	return config.ReplaceRule{
		Search:           cmd.String("search"),
		Replace:          cmd.String("replace"),
		Regex:            cmd.Bool("regex"),
		UseSubstitutions: cmd.Bool("subst"),
	}
}

func sourceArg(cmd *cli.Command) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input document has been specified")
	}
	return filepath.Abs(src)
}

// derivedOutputPath builds a destination name next to the source from its
// slugified base name.
func derivedOutputPath(src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), config.CleanFileName(slug.Make(base))+"-edited.docx")
}
