package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"twitchCli/internal/domain"
)

type palette struct {
	bullet *color.Color
	name   *color.Color
	game   *color.Color
	count  *color.Color
	detail *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		bullet: color.New(color.FgHiRed),
		name:   color.New(color.FgHiBlue, color.Bold),
		game:   color.New(color.FgHiYellow),
		count:  color.New(color.FgHiGreen),
		detail: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.bullet, p.name, p.game, p.count, p.detail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Renderer prints stream and VOD listings. Colors are only emitted when the
// output is a terminal.
type Renderer struct {
	out    io.Writer
	colors palette
}

// NewRenderer writes to f, colorizing when f is a terminal and NO_COLOR is
// unset.
func NewRenderer(f *os.File) *Renderer {
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !tty || os.Getenv("NO_COLOR") != "" {
		return NewPlainRenderer(f)
	}
	return &Renderer{
		out:    colorable.NewColorable(f),
		colors: newPalette(true),
	}
}

func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{
		out:    colorable.NewNonColorable(w),
		colors: newPalette(false),
	}
}

func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Streams prints a numbered listing, or one display name per line when flat.
func (r *Renderer) Streams(title string, streams []domain.Stream, flat bool) {
	if flat {
		for _, s := range streams {
			fmt.Fprintln(r.out, s.UserName)
		}
		return
	}

	r.title(title)
	width := len(strconv.Itoa(len(streams)))
	indent := strings.Repeat(" ", width+3)

	for i, s := range streams {
		var b strings.Builder
		b.WriteString(r.colors.bullet.Sprint(bullet(i+1, width) + " "))
		b.WriteString(r.colors.name.Sprint(s.UserName + ": "))
		b.WriteString(r.colors.game.Sprint(s.GameName + " "))
		b.WriteString(r.colors.count.Sprintf("[%d viewers]", s.ViewerCount))
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(r.colors.detail.Sprint(s.Title))
		b.WriteString("\n")
		fmt.Fprintln(r.out, b.String())
	}
}

// Videos prints a numbered listing, or one URL per line when flat.
func (r *Renderer) Videos(title string, videos []domain.Video, flat bool) {
	if flat {
		for _, v := range videos {
			fmt.Fprintln(r.out, v.URL)
		}
		return
	}

	r.title(title)
	width := len(strconv.Itoa(len(videos)))
	indent := strings.Repeat(" ", width+3)

	for i, v := range videos {
		var b strings.Builder
		b.WriteString(r.colors.bullet.Sprint(bullet(i+1, width) + " "))
		b.WriteString(r.colors.name.Sprint(v.Title))
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(r.colors.detail.Sprint("Recorded: " + v.CreatedAt))
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(r.colors.detail.Sprint("Duration: " + v.Duration))
		b.WriteString("\n")
		fmt.Fprintln(r.out, b.String())
	}
}

func (r *Renderer) title(title string) {
	if title == "" {
		return
	}
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out)
}

// bullet right-aligns "[i]" to the widest index.
func bullet(i, width int) string {
	return fmt.Sprintf("%*s", width+2, "["+strconv.Itoa(i)+"]")
}
