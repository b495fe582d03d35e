package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/rxtech-lab/art-trader/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle    = lipgloss.NewStyle().Faint(true).Width(18)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func render(w io.Writer, format string, rows []types.BacktestResult, summary types.BacktestSummary) error {
	if format == formatYAML {
		return renderYAML(w, rows, summary)
	}

	renderRows(w, rows)
	_, err := fmt.Fprintln(w, renderSummary(summary))

	return err
}

func renderYAML(w io.Writer, rows []types.BacktestResult, summary types.BacktestSummary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	err := encoder.Encode(struct {
		Summary types.BacktestSummary  `yaml:"summary"`
		Rows    []types.BacktestResult `yaml:"rows"`
	}{summary, rows})
	if err != nil {
		return err
	}

	return encoder.Close()
}

func renderRows(w io.Writer, rows []types.BacktestResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Profit", "Balance"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range rows {
		table.Append([]string{row.Date.String(), formatMoney(row.Profit), formatMoney(row.Balance)})
	}

	table.Render()
}

func renderSummary(s types.BacktestSummary) string {
	line := func(label, value string) string {
		return labelStyle.Render(label) + value + "\n"
	}

	out := titleStyle.Render(fmt.Sprintf("Backtest %s .. %s", s.StartDate, s.EndDate)) + "\n"
	out += line("Initial balance", formatMoney(s.InitialBalance))
	out += line("Final balance", formatMoney(s.FinalBalance))
	out += line("Total profit", colored(s.TotalProfit, formatMoney(s.TotalProfit)))
	out += line("Return", colored(s.TotalProfit, s.ReturnPercent.String()+"%"))
	out += line("Trading days", strconv.Itoa(s.TradingDays))
	out += line("Win / loss / flat", fmt.Sprintf("%d / %d / %d", s.Days.Profitable, s.Days.Losing, s.Days.Flat))
	out += line("Max drawdown", fmt.Sprintf("%s (%s%%)", formatMoney(s.MaxDrawdown.Absolute), s.MaxDrawdown.Percent))
	out += line("Sharpe ratio", strconv.FormatFloat(s.SharpeRatio, 'f', 2, 64))

	return out
}

func colored(v float64, text string) string {
	switch {
	case v > 0:
		return positiveStyle.Render(text)
	case v < 0:
		return negativeStyle.Render(text)
	default:
		return text
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
