package activeres

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

type state int

const (
	stateConfirm state = iota
	stateResolving
	stateDone
)

type resultMsg struct {
	records []Record
	err     error
}

// Dialog confirms (when ar_confirm is on) and then resolves one domain.
type Dialog struct {
	ctx      context.Context
	prefs    ui.Prefs
	resolver Lookuper
	domain   string
	timeout  time.Duration

	state    state
	neverAsk bool
	records  []Record
	err      error
	status   string
}

func NewDialog(ctx context.Context, p ui.Prefs, r Lookuper, domain string, timeout time.Duration) *Dialog {
	d := &Dialog{ctx: ctx, prefs: p, resolver: r, domain: domain, timeout: timeout, state: stateConfirm}
	if !p.Bool("ar_confirm") {
		d.state = stateResolving
	}
	return d
}

func (d *Dialog) Init() tea.Cmd {
	if d.state == stateResolving {
		return d.resolve
	}
	return nil
}

func (d *Dialog) resolve() tea.Msg {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()
	records, err := Resolve(ctx, d.resolver, d.domain)
	return resultMsg{records: records, err: err}
}

func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		d.state = stateDone
		d.records, d.err = msg.records, msg.err
		return d, nil
	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *Dialog) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch d.state {
	case stateConfirm:
		switch k.String() {
		case "y", "enter":
			if d.neverAsk {
				if err := d.prefs.Set(d.ctx, "ar_confirm", false); err != nil {
					d.status = "Could not save preference: " + err.Error()
				}
			}
			d.state = stateResolving
			return d, d.resolve
		case "a", " ":
			d.neverAsk = !d.neverAsk
		case "n", "q", "esc":
			return d, tui.Back
		}
	case stateDone:
		switch k.String() {
		case "q", "esc", "enter":
			return d, tui.Back
		}
	}
	return d, nil
}

func (d *Dialog) View() string {
	var b strings.Builder
	switch d.state {
	case stateConfirm:
		fmt.Fprintf(&b, "Warning: Making Active DNS Resolutions has the potential to leak information to outside parties without your knowledge. Are you sure would you like to actively resolve %q?\n\n", d.domain)
		mark := " "
		if d.neverAsk {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] Never Prompt Again ('a' toggles)\n\n", mark)
		b.WriteString("y: Yes, I'm Sure    n: No, Cancel\n")
	case stateResolving:
		b.WriteString("Querying ...\n")
	case stateDone:
		if d.err != nil {
			fmt.Fprintf(&b, "Unable to resolve %s: %v\n", d.domain, d.err)
			break
		}
		writeList(&b, "Hostnames", Hostnames(d.records))
		writeList(&b, "IPs", IPs(d.records))
		b.WriteString("(press 'q' to close)\n")
	}
	if d.status != "" {
		b.WriteString("\n" + d.status + "\n")
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString(title + "\n")
	if len(items) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, it := range items {
		b.WriteString("  " + it + "\n")
	}
	b.WriteString("\n")
}
