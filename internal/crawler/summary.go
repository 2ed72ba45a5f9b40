package crawler

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func (c *Crawler) banner() {
	if !c.Verbose {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	banner := "==============================================================================\n"
	banner += green("       📚 Course Module Scraper 📚\n")
	banner += "==============================================================================\n"
	banner += fmt.Sprintf("Target URL: %s\n", c.scraper.BaseURL())
	banner += "Configuration:\n"
	banner += fmt.Sprintf("  - Output Root: %s\n", c.config.OutputRoot)
	banner += fmt.Sprintf("  - Pacing Delay: %s to %s\n", c.config.MinDelay, c.config.MaxDelay)
	banner += "=============================================================================="
	fmt.Println(banner)
}

func (c *Crawler) summary(results []pageResult) {
	if !c.Verbose {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "File", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignLeft, WidthMax: 40},
		{Number: 3, Align: text.AlignLeft, WidthMax: 48},
	})

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	for _, r := range results {
		status := green(r.Status)
		if r.Status != statusSaved {
			status = red(r.Status)
		}
		t.AppendRow(table.Row{r.Index, r.Title, r.File, status})
	}
	t.Render()
}
