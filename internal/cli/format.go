package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// itemFields is the flattened view of an item used for printing.
type itemFields struct {
	start    time.Time
	end      time.Time
	title    string
	desc     string
	kind     domain.Kind
	status   domain.Status
	duration time.Duration
	id       int
	epicID   int
}

func fieldsOf(item domain.Item) itemFields {
	switch v := item.(type) {
	case domain.Subtask:
		f := fieldsOf(v.Task)
		f.kind = domain.KindSubtask
		f.epicID = v.EpicID
		return f
	case domain.Task:
		return itemFields{
			id:       v.ID,
			kind:     domain.KindTask,
			title:    v.Title,
			desc:     v.Description,
			status:   v.Status,
			duration: v.Duration,
			start:    v.StartTime,
			end:      v.EndTime(),
		}
	case domain.Epic:
		return itemFields{
			id:       v.ID,
			kind:     domain.KindEpic,
			title:    v.Title,
			desc:     v.Description,
			status:   v.Status(),
			duration: v.Duration(),
			start:    v.StartTime(),
			end:      v.EndTime(),
		}
	default:
		return itemFields{id: item.ItemID(), kind: item.Kind(), title: item.Heading()}
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(domain.TimeLayout)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.String()
}

// printTable writes items as aligned rows.
func printTable(w io.Writer, items []domain.Item) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, headingStyle.Render("ID")+"\t"+headingStyle.Render("TYPE")+"\t"+
		headingStyle.Render("STATUS")+"\t"+headingStyle.Render("START")+"\t"+
		headingStyle.Render("DURATION")+"\t"+headingStyle.Render("TITLE"))
	for _, it := range items {
		f := fieldsOf(it)
		title := f.title
		if f.epicID != 0 {
			title += mutedStyle.Render(fmt.Sprintf(" (epic #%d)", f.epicID))
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			f.id, f.kind, statusBadge(f.status), formatTime(f.start), formatDuration(f.duration), title)
	}
	_ = tw.Flush()
}

// printItem writes the details of a single item.
func printItem(w io.Writer, item domain.Item) {
	f := fieldsOf(item)
	_, _ = fmt.Fprintf(w, "%s %s\n", headingStyle.Render(domain.ItemRef(item)+":"), f.title)
	_, _ = fmt.Fprintf(w, "  Status:   %s\n", statusBadge(f.status))
	if f.epicID != 0 {
		_, _ = fmt.Fprintf(w, "  Epic:     #%d\n", f.epicID)
	}
	_, _ = fmt.Fprintf(w, "  Start:    %s\n", formatTime(f.start))
	_, _ = fmt.Fprintf(w, "  End:      %s\n", formatTime(f.end))
	_, _ = fmt.Fprintf(w, "  Duration: %s\n", formatDuration(f.duration))
	if f.desc != "" {
		_, _ = fmt.Fprintln(w)
		for _, line := range strings.Split(f.desc, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func subtaskItems(subtasks []domain.Subtask) []domain.Item {
	out := make([]domain.Item, 0, len(subtasks))
	for _, s := range subtasks {
		out = append(out, s)
	}
	return out
}
