package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iho/bankist/internal/adapter/http/dto"
	"github.com/iho/bankist/internal/presenter"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	depositStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#39b385"))
	withdrawalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e52a5a"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d"))
	balanceStyle    = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// renderView draws the logged-in account screen, or just the welcome line.
func renderView(v dto.ViewResponse) string {
	if !v.LoggedIn {
		return titleStyle.Render(v.Welcome)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.Welcome),
		mutedStyle.Render("As of "+v.Date),
	)
	balance := balanceStyle.Render("Current balance " + v.Balance)

	summary := strings.Join([]string{
		"IN " + depositStyle.Render(v.In),
		"OUT " + withdrawalStyle.Render(v.Out),
		"INTEREST " + depositStyle.Render(v.Interest),
		mutedStyle.Render("sort: " + v.Sort),
	}, "  ")

	footer := noticeStyle.Render(fmt.Sprintf("You will be logged out in %s", v.Timer))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		balance,
		renderMovements(v.Movements),
		summary,
		footer,
	)
}

func renderMovements(rows []dto.RowResponse) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "TYPE", "DATE", "AMOUNT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(rows) || col != 1 {
				return lipgloss.NewStyle()
			}
			if rows[row].Type == presenter.RowDeposit {
				return depositStyle
			}
			return withdrawalStyle
		})

	for _, r := range rows {
		t.Row(strconv.Itoa(r.Index), strings.ToUpper(r.Type), r.Date, r.Value)
	}

	return t.Render()
}

func renderAccounts(accounts []dto.AccountResponse) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("USERNAME", "OWNER", "CURRENCY")

	for _, a := range accounts {
		t.Row(a.Username, a.Owner, fmt.Sprintf("%s (%s)", a.Currency, a.CurrencyName))
	}

	return t.Render()
}
