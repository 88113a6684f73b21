package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// printer renders command results for humans, or as JSON.
type printer struct {
	out   io.Writer
	json  bool
	title lipgloss.Style
	tag   lipgloss.Style
	url   lipgloss.Style
}

// newPrinter colors output only when color is true.
func newPrinter(out io.Writer, color, asJSON bool) *printer {
	r := lipgloss.NewRenderer(out)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &printer{
		out:   out,
		json:  asJSON,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		tag:   r.NewStyle().Foreground(lipgloss.Color("3")),
		url:   r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// newPrinterFor writes to the command's output. Colors are used only on a
// terminal, and never with --no-color or NO_COLOR set.
func newPrinterFor(cmd *cobra.Command, opts *globalOptions) *printer {
	out := cmd.OutOrStdout()
	color := !opts.noColor && os.Getenv("NO_COLOR") == "" && isTerminal(out)
	return newPrinter(out, color, opts.jsonOutput)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *printer) printJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// bookmark renders:
//
//	Title [tag1,tag2]
//	https://url
//	description
func (p *printer) bookmark(b domain.Bookmark) string {
	var sb strings.Builder

	heading := b.URL
	if b.Title != nil {
		heading = *b.Title
	}
	sb.WriteString(p.title.Render(heading))

	if len(b.Tags) > 0 {
		tags := make([]string, len(b.Tags))
		for i, t := range b.Tags {
			tags[i] = p.tag.Render(t)
		}
		sb.WriteString(" [" + strings.Join(tags, ",") + "]")
	}

	sb.WriteString("\n" + p.url.Render(b.URL))
	if b.Description != nil {
		sb.WriteString("\n" + *b.Description)
	}
	return sb.String()
}

func (p *printer) bookmarks(list []domain.Bookmark) error {
	if p.json {
		return p.printJSON(list)
	}
	p.printf("Found %d %s.\n", len(list), plural("bookmarks", len(list)))
	for i, b := range list {
		if i > 0 {
			p.printf("\n")
		}
		p.printf("%s\n", p.bookmark(b))
	}
	return nil
}

func (p *printer) added(res *domain.AddResult) error {
	if p.json {
		return p.printJSON(struct {
			Created  bool            `json:"created"`
			Bookmark domain.Bookmark `json:"bookmark"`
		}{res.Created, res.Bookmark})
	}
	if res.Created {
		p.printf("Added bookmark:\n")
	} else {
		p.printf("A bookmark for that URL already exists:\n")
	}
	p.printf("%s\n", p.bookmark(res.Bookmark))
	return nil
}

// tags prints one line per tag, names padded to the longest.
func (p *printer) tags(list []domain.TagCount) error {
	if p.json {
		return p.printJSON(list)
	}
	p.printf("Found %d %s.\n", len(list), plural("tags", len(list)))

	longest := 0
	for _, t := range list {
		longest = max(longest, len(t.Name))
	}
	for _, t := range list {
		name := p.tag.Render(fmt.Sprintf("%-*s", longest, t.Name))
		p.printf("%s (%d %s)\n", name, t.Count, plural("bookmarks", int(t.Count)))
	}
	return nil
}

func (p *printer) imported(sum importSummary) error {
	if p.json {
		return p.printJSON(sum)
	}
	p.printf("Imported %d %s, %d already saved.\n", sum.Added, plural("bookmarks", sum.Added), sum.Existing)
	return nil
}

// count prints the outcome of a bulk operation.
func (p *printer) count(n int64, format string, args ...any) error {
	if p.json {
		return p.printJSON(n)
	}
	p.printf(format+"\n", args...)
	return nil
}

// plural drops the trailing "s" of word when n is one.
func plural(word string, n int) string {
	if n == 1 {
		return strings.TrimSuffix(word, "s")
	}
	return word
}
