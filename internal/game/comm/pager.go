package comm

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Default page geometry.
const (
	PageLength = 22
	PageWidth  = 80
)

const pagerHelp = "Valid commands while paging are RETURN, Q, R, B, or a numeric value.\r\n"

// Paginate wraps text to width columns and splits it into pages of at most
// length lines. Colour escape sequences do not count toward the width.
func Paginate(text string, length, width int) []string {
	if text == "" {
		return nil
	}
	if length <= 0 {
		length = PageLength
	}
	if width <= 0 {
		width = PageWidth
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	wrapped := wrap.String(wordwrap.String(text, width), width)
	lines := strings.SplitAfter(wrapped, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var pages []string
	for start := 0; start < len(lines); start += length {
		page := strings.Join(lines[start:min(start+length, len(lines))], "")
		pages = append(pages, strings.ReplaceAll(page, "\n", "\r\n"))
	}
	return pages
}

// PageString starts paging text on d and shows the first page.
func PageString(d *world.Descriptor, text string, length, width int) {
	pages := Paginate(text, length, width)
	if len(pages) == 0 {
		return
	}
	d.Pager = &world.Pager{Pages: pages}
	ShowString(d, "")
}

// ShowString handles one line of pager input: RETURN for the next page,
// q to quit, r to refresh, b to go back, or a page number.
func ShowString(d *world.Descriptor, input string) {
	p := d.Pager
	if p == nil {
		return
	}
	arg, _ := command.AnyOneArg(input)

	switch {
	case arg == "":
	case arg[0] == 'q':
		d.Pager = nil
		return
	case arg[0] == 'r':
		p.Page = max(0, p.Page-1)
	case arg[0] == 'b':
		p.Page = max(0, p.Page-2)
	case arg[0] >= '0' && arg[0] <= '9':
		n, err := strconv.Atoi(arg)
		if err != nil {
			d.Write(pagerHelp)
			return
		}
		p.Page = max(0, min(n-1, len(p.Pages)-1))
	default:
		d.Write(pagerHelp)
		return
	}

	d.Write(p.Pages[p.Page])
	if p.Page+1 >= len(p.Pages) {
		d.Pager = nil
		return
	}
	p.Page++
}

// PagerPrompt is the prompt shown while d is paging.
func PagerPrompt(d *world.Descriptor) string {
	return "\r\n[ Return to continue, (q)uit, (r)efresh, (b)ack, or page number (" +
		strconv.Itoa(d.Pager.Page) + "/" + strconv.Itoa(len(d.Pager.Pages)) + ") ]"
}
