/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import "io"
import "os"
import "fmt"
import "strings"
import "path/filepath"

// Declaration describes a builtin procedure. Fn gets a view on the call site
// and reads its arguments through it; Resolve tells Args.Arg whether those
// arguments are evaluated first or handed over as raw syntax.
type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string // any | string | number | name | list | procedure
	Fn           func(a *Args) (Value, error)
	Resolve      bool
}

type DeclarationParameter struct {
	Name string
	Type string // any | string | number | name | list | call
	Desc string
}

var declaration_titles []string
var declarations map[string]*Declaration = make(map[string]*Declaration)

func DeclareTitle(title string) {
	declaration_titles = append(declaration_titles, "#"+title)
}

// Declare registers a builtin; every interpreter created afterwards binds it.
func Declare(def *Declaration) {
	if _, ok := declarations[def.Name]; !ok {
		declaration_titles = append(declaration_titles, def.Name)
	}
	declarations[def.Name] = def
}

// Declarations lists all builtins in declaration order.
func Declarations() []*Declaration {
	var result []*Declaration
	for _, t := range declaration_titles {
		if t[0] == '#' {
			continue
		}
		result = append(result, declarations[t])
	}
	return result
}

// DeclarationFor resolves a builtin by name or nil.
func DeclarationFor(name string) *Declaration {
	return declarations[name]
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

type chapter struct {
	Title string
	Slug  string
	Fns   []*Declaration
}

// chapters groups the declarations under their titles; declarations before
// the first title land in "General".
func chapters() []*chapter {
	var result []*chapter
	var current *chapter
	used := map[string]int{}
	uniqSlug := func(s string) string {
		base := slugify(s)
		used[base]++
		if used[base] == 1 {
			return base
		}
		return fmt.Sprintf("%s-%d", base, used[base])
	}
	for _, t := range declaration_titles {
		if t[0] == '#' {
			title := strings.TrimSpace(t[1:])
			current = &chapter{Title: title, Slug: uniqSlug(title)}
			result = append(result, current)
			continue
		}
		if current == nil {
			current = &chapter{Title: "General", Slug: uniqSlug("General")}
			result = append(result, current)
		}
		current.Fns = append(current.Fns, declarations[t])
	}
	return result
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all procedures of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}
	chs := chapters()

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chs {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chs {
		if len(ch.Fns) == 0 {
			continue
		}
		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}
		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			writeDeclaration(f, def)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", fp, err)
		}
	}
	return nil
}

func writeDeclaration(w io.Writer, def *Declaration) {
	fmt.Fprintf(w, "## %s\n\n", def.Name)
	if def.Desc != "" {
		fmt.Fprintf(w, "%s\n\n", def.Desc)
	}
	fmt.Fprintf(w, "**Allowed number of parameters:** %s\n\n", arity(def))
	fmt.Fprint(w, "### Parameters\n\n")
	if len(def.Params) == 0 {
		fmt.Fprint(w, "_This procedure has no parameters._\n\n")
	} else {
		for _, p := range def.Params {
			fmt.Fprintf(w, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
		}
		fmt.Fprintln(w)
	}
	if !def.Resolve {
		fmt.Fprint(w, "Arguments are passed as unevaluated syntax.\n\n")
	}
	fmt.Fprintf(w, "### Returns\n\n`%s`\n\n", def.Returns)
}

func arity(def *Declaration) string {
	if def.MaxParameter >= variadic {
		return fmt.Sprintf("%d or more", def.MinParameter)
	}
	if def.MinParameter == def.MaxParameter {
		return fmt.Sprint(def.MinParameter)
	}
	return fmt.Sprintf("%d–%d", def.MinParameter, def.MaxParameter)
}

// variadic is the MaxParameter of procedures without an upper bound.
const variadic = 1000

// Help writes the list of builtins, or the details of one, to w.
func Help(w io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(w, "Available procedures:")
		for _, title := range declaration_titles {
			if title[0] == '#' {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(declarations[title].Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "get further information by typing (help \"name\")")
		return nil
	}
	def := DeclarationFor(name)
	if def == nil {
		return ErrFuncNotDefined
	}
	writeDeclaration(w, def)
	return nil
}
